package services

import (
	"context"
	"net/http"

	carelink "github.com/carelink/carelink-go"
)

// SettingsService reads and writes the account preferences.
type SettingsService struct {
	api *carelink.Client
}

func NewSettingsService(api *carelink.Client) *SettingsService {
	return &SettingsService{api: api}
}

func (s *SettingsService) Get(ctx context.Context) (*Settings, error) {
	var settings Settings
	if err := s.api.Request(ctx, http.MethodGet, carelink.NewEndpoint("/settings"), nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *SettingsService) Update(ctx context.Context, settings Settings) (*Settings, error) {
	var updated Settings
	if err := s.api.Request(ctx, http.MethodPut, carelink.NewEndpoint("/settings"), settings, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
