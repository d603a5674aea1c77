package service

import (
	"strings"

	"github.com/nchoi/atelier-backend/pkg/logger"
)

// AssistantService answers support questions from a fixed topic table.
// Replies are deterministic: the first topic whose keyword appears in
// the message wins, so the same question always gets the same answer.
type AssistantService interface {
	Reply(sessionID string, message string) string
}

type assistantTopic struct {
	keywords []string
	reply    string
}

var assistantTopics = []assistantTopic{
	{
		keywords: []string{"return", "refund"},
		reply:    "You can return any item within 30 days of delivery for a full refund. Start a return from your order history page.",
	},
	{
		keywords: []string{"shipping", "delivery", "ship"},
		reply:    "Standard shipping takes 3-5 business days and is free on orders over $100. Orders under $100 ship for a flat $9.99.",
	},
	{
		keywords: []string{"order", "track"},
		reply:    "You can check the status of any order from your order history. Search by order number or item name to find it quickly.",
	},
	{
		keywords: []string{"size", "sizing", "fit"},
		reply:    "Each product page lists the available sizes. If you are between sizes we recommend sizing up for a relaxed fit.",
	},
	{
		keywords: []string{"payment", "card", "pay"},
		reply:    "We accept all major credit and debit cards. Your card details are only used to process the order and are never stored.",
	},
	{
		keywords: []string{"cancel"},
		reply:    "Orders can be cancelled while they are still in Processing. Once an order ships it can no longer be cancelled, but you can return it.",
	},
	{
		keywords: []string{"hello", "hi", "hey"},
		reply:    "Hi there! I can help with orders, shipping, returns, sizing and payments. What would you like to know?",
	},
}

const assistantFallback = "I'm sorry, I didn't quite catch that. I can help with orders, shipping, returns, sizing and payments."

type assistantService struct{}

func NewAssistantService() AssistantService {
	return assistantService{}
}

func (assistantService) Reply(sessionID string, message string) string {
	normalized := strings.ToLower(message)

	for _, topic := range assistantTopics {
		for _, keyword := range topic.keywords {
			if strings.Contains(normalized, keyword) {
				logger.Debug("Assistant matched topic", map[string]interface{}{
					"session_id": sessionID,
					"keyword":    keyword,
				})
				return topic.reply
			}
		}
	}

	logger.Debug("Assistant fallback reply", map[string]interface{}{
		"session_id": sessionID,
	})
	return assistantFallback
}
