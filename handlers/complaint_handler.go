package handlers

import (
	"context"
	"net/http"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/services"
)

type ComplaintIntake interface {
	Submit(ctx context.Context, req services.SubmitComplaintRequest) (*models.Complaint, error)
}

type ComplaintHandler struct {
	complaints ComplaintIntake
}

func NewComplaintHandler(complaints ComplaintIntake) *ComplaintHandler {
	return &ComplaintHandler{complaints: complaints}
}

func (h *ComplaintHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req services.SubmitComplaintRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	complaint, err := h.complaints.Submit(r.Context(), req)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, complaint, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
