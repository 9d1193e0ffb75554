package services

import (
	"context"
	"net/http"

	carelink "github.com/carelink/carelink-go"
)

// MessageService handles member conversations.
type MessageService struct {
	api *carelink.Client
}

func NewMessageService(api *carelink.Client) *MessageService {
	return &MessageService{api: api}
}

// SendMessageRequest is the wire body of POST /messages. TemplateID is
// optional; when set the backend expands the template into the body.
type SendMessageRequest struct {
	MemberID   string `json:"memberId"`
	TemplateID string `json:"templateId,omitempty"`
	Subject    string `json:"subject,omitempty"`
	Body       string `json:"body,omitempty"`
}

// List returns the conversation with one member, newest first.
func (s *MessageService) List(ctx context.Context, memberID string) ([]Message, error) {
	var messages []Message
	if err := s.api.Request(ctx, http.MethodGet, carelink.NewEndpoint("/members/%s/messages", memberID), nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *MessageService) Send(ctx context.Context, req SendMessageRequest) (*Message, error) {
	var msg Message
	if err := s.api.Request(ctx, http.MethodPost, carelink.NewEndpoint("/messages"), req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *MessageService) MarkRead(ctx context.Context, messageID string) error {
	return s.api.Request(ctx, http.MethodPost, carelink.NewEndpoint("/messages/%s/read", messageID), nil, nil)
}
