package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/nchoi/atelier-backend/internal/app/service"
	"github.com/nchoi/atelier-backend/internal/middleware"
	"github.com/nchoi/atelier-backend/pkg/logger"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4 * 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type chatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// AssistantHandler serves the support assistant over a WebSocket. Each
// client message gets exactly one deterministic reply.
type AssistantHandler struct {
	assistantService service.AssistantService
}

func NewAssistantHandler(assistantService service.AssistantService) *AssistantHandler {
	return &AssistantHandler{
		assistantService: assistantService,
	}
}

// Serve upgrades the connection and runs the chat loop
// GET /api/v1/assistant/ws
func (h *AssistantHandler) Serve(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("WebSocket upgrade failed", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return
	}

	client := &client{
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan chatMessage, 8),
	}

	go client.writePump()
	client.readPump(h.assistantService)
}

type client struct {
	conn      *websocket.Conn
	sessionID string
	send      chan chatMessage
}

func (c *client) readPump(assistant service.AssistantService) {
	defer func() {
		close(c.send)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error", err, map[string]interface{}{
					"session_id": c.sessionID,
				})
			}
			return
		}

		var msg chatMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			msg.Text = string(raw)
		}

		reply := assistant.Reply(c.sessionID, msg.Text)
		c.send <- chatMessage{Sender: "assistant", Text: reply}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Error("Failed to write message", err, map[string]interface{}{
					"session_id": c.sessionID,
				})
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
