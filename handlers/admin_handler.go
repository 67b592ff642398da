package handlers

import (
	"context"
	"net/http"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/services"
)

type AdminProvider interface {
	DashboardSummary(ctx context.Context) (*models.DashboardSummary, error)
	ListPendingTournaments(ctx context.Context) ([]models.Tournament, error)
	ListOfficialTournaments(ctx context.Context) ([]models.Tournament, error)
	Approve(ctx context.Context, id int64) error
	Reject(ctx context.Context, id int64) error
	CreateOfficial(ctx context.Context, req services.CreateOfficialRequest) (*models.Tournament, error)
	ListOpenComplaints(ctx context.Context) ([]models.Complaint, error)
	ResolveComplaint(ctx context.Context, id int64) error
}

type AdminHandler struct {
	admin AdminProvider
}

func NewAdminHandler(admin AdminProvider) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.admin.DashboardSummary(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, summary, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	list, err := h.admin.ListPendingTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, list, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) ListOfficial(w http.ResponseWriter, r *http.Request) {
	list, err := h.admin.ListOfficialTournaments(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, list, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.admin.Approve)
}

func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.admin.Reject)
}

func (h *AdminHandler) CreateOfficial(w http.ResponseWriter, r *http.Request) {
	var req services.CreateOfficialRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.admin.CreateOfficial(r.Context(), req)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, t, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) ListComplaints(w http.ResponseWriter, r *http.Request) {
	list, err := h.admin.ListOpenComplaints(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, list, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AdminHandler) ResolveComplaint(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.admin.ResolveComplaint)
}

func (h *AdminHandler) transition(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, id int64) error) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := apply(r.Context(), id); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
