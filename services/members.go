package services

import (
	"context"
	"net/http"

	carelink "github.com/carelink/carelink-go"
)

// MemberService manages the care roster.
type MemberService struct {
	api *carelink.Client
}

func NewMemberService(api *carelink.Client) *MemberService {
	return &MemberService{api: api}
}

// MemberInput is the wire body for creating or updating a member.
type MemberInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Status    string `json:"status,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

func (s *MemberService) List(ctx context.Context) ([]Member, error) {
	var members []Member
	if err := s.api.Request(ctx, http.MethodGet, carelink.NewEndpoint("/members"), nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (s *MemberService) Get(ctx context.Context, id string) (*Member, error) {
	var member Member
	if err := s.api.Request(ctx, http.MethodGet, carelink.NewEndpoint("/members/%s", id), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) Create(ctx context.Context, input MemberInput) (*Member, error) {
	var member Member
	if err := s.api.Request(ctx, http.MethodPost, carelink.NewEndpoint("/members"), input, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) Update(ctx context.Context, id string, input MemberInput) (*Member, error) {
	var member Member
	if err := s.api.Request(ctx, http.MethodPut, carelink.NewEndpoint("/members/%s", id), input, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MemberService) Delete(ctx context.Context, id string) error {
	return s.api.Request(ctx, http.MethodDelete, carelink.NewEndpoint("/members/%s", id), nil, nil)
}
