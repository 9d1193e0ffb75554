package services

import (
	"context"
	"net/http"

	carelink "github.com/carelink/carelink-go"
)

// TemplateService manages reusable message templates.
type TemplateService struct {
	api *carelink.Client
}

func NewTemplateService(api *carelink.Client) *TemplateService {
	return &TemplateService{api: api}
}

// TemplateInput is the wire body for creating or updating a template.
type TemplateInput struct {
	Name    string `json:"name"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body"`
}

func (s *TemplateService) List(ctx context.Context) ([]Template, error) {
	var templates []Template
	if err := s.api.Request(ctx, http.MethodGet, carelink.NewEndpoint("/templates"), nil, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

func (s *TemplateService) Create(ctx context.Context, input TemplateInput) (*Template, error) {
	var tpl Template
	if err := s.api.Request(ctx, http.MethodPost, carelink.NewEndpoint("/templates"), input, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *TemplateService) Update(ctx context.Context, id string, input TemplateInput) (*Template, error) {
	var tpl Template
	if err := s.api.Request(ctx, http.MethodPut, carelink.NewEndpoint("/templates/%s", id), input, &tpl); err != nil {
		return nil, err
	}
	return &tpl, nil
}

func (s *TemplateService) Delete(ctx context.Context, id string) error {
	return s.api.Request(ctx, http.MethodDelete, carelink.NewEndpoint("/templates/%s", id), nil, nil)
}
