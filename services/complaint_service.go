package services

import (
	"context"
	"strings"
	"time"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/repositories"
)

type SubmitComplaintRequest struct {
	UserName string `json:"user_name"`
	Email    string `json:"email"`
	Type     string `json:"type"`
	Message  string `json:"message"`
}

type ComplaintService struct {
	repo repositories.ComplaintRepository
}

func NewComplaintService(repo repositories.ComplaintRepository) *ComplaintService {
	return &ComplaintService{repo: repo}
}

// Submit принимает жалобу, новая жалоба всегда открыта.
func (s *ComplaintService) Submit(ctx context.Context, req SubmitComplaintRequest) (*models.Complaint, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrComplaintMessageRequired
	}

	complaint := &models.Complaint{
		UserName:  req.UserName,
		Email:     req.Email,
		Type:      req.Type,
		Message:   req.Message,
		Status:    models.ComplaintOpen,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, complaint); err != nil {
		return nil, err
	}
	return complaint, nil
}
