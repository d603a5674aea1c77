package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nchoi/atelier-backend/internal/app/service"
	apperrors "github.com/nchoi/atelier-backend/internal/errors"
	"github.com/nchoi/atelier-backend/internal/middleware"
)

type AssistantController struct {
	assistantService service.AssistantService
}

func NewAssistantController(assistantService service.AssistantService) *AssistantController {
	return &AssistantController{
		assistantService: assistantService,
	}
}

type AssistantRequest struct {
	Message string `json:"message" binding:"required"`
}

// Chat returns the assistant's reply to a single message
// POST /api/v1/assistant/chat
func (ctrl *AssistantController) Chat(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	var req AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid assistant request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid request body")
		return
	}

	reply := ctrl.assistantService.Reply(sessionID, req.Message)

	c.JSON(http.StatusOK, gin.H{
		"sender": "assistant",
		"text":   reply,
	})
}
