package api

import (
	"context"
	"net/http"

	pkgerrors "github.com/mateorivas/brewcart/pkg/errors"
)

// ChatbotRequest carries either a free-text message or a mood keyword.
type ChatbotRequest struct {
	Message           string `json:"message,omitempty"`
	Mood              string `json:"mood,omitempty"`
	SessionID         string `json:"session_id,omitempty"`
	IsNewConversation bool   `json:"is_new_conversation,omitempty"`
}

// ChatbotResponse is the barista bot's recommendation.
type ChatbotResponse struct {
	Suggestion string `json:"suggestion"`
	Timestamp  string `json:"timestamp,omitempty"`
}

// Chat sends a message or mood to the barista bot.
func (c *Client) Chat(ctx context.Context, req ChatbotRequest) (*ChatbotResponse, error) {
	if req.Message == "" && req.Mood == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message or mood is required")
	}
	var resp ChatbotResponse
	if err := c.do(ctx, requestSpec{method: http.MethodPost, path: "/chatbot", body: req}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
