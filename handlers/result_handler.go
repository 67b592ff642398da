package handlers

import (
	"context"
	"net/http"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/services"
)

type ResultProvider interface {
	GetResult(ctx context.Context, tournamentID int64) (*models.TournamentResult, error)
	SaveResult(ctx context.Context, tournamentID int64, req services.SaveResultRequest) (*models.TournamentResult, error)
}

type ResultHandler struct {
	results ResultProvider
}

func NewResultHandler(results ResultProvider) *ResultHandler {
	return &ResultHandler{results: results}
}

func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.results.GetResult(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ResultHandler) Save(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var req services.SaveResultRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	result, err := h.results.SaveResult(r.Context(), id, req)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
