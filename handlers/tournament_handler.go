package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/services"
	"github.com/go-chi/chi/v5"
)

// TournamentJoiner — ядро: транзакция вступления в турнир.
type TournamentJoiner interface {
	Join(ctx context.Context, tournamentID, userID int64, req services.JoinRequest) (*services.JoinResult, error)
}

type TournamentProvider interface {
	CreateRequest(ctx context.Context, req services.CreateTournamentRequest) (*models.Tournament, error)
	GetByID(ctx context.Context, id int64) (*models.Tournament, error)
	ListByStatus(ctx context.Context, status models.TournamentStatus) ([]models.Tournament, error)
	ListHostedBy(ctx context.Context, username string) ([]models.Tournament, error)
	ListPublic(ctx context.Context) ([]models.Tournament, error)
	ListParticipants(ctx context.Context, tournamentID int64) ([]models.Participant, error)
	Start(ctx context.Context, id int64) (*models.Tournament, error)
	Complete(ctx context.Context, id int64, winner *string, prizeDelivered bool) (*models.Tournament, error)
	UploadBanner(ctx context.Context, id int64, contentType string, data io.Reader) (*models.Tournament, error)
}

type TournamentHandler struct {
	tournaments TournamentProvider
	joiner      TournamentJoiner
}

func NewTournamentHandler(tournaments TournamentProvider, joiner TournamentJoiner) *TournamentHandler {
	return &TournamentHandler{tournaments: tournaments, joiner: joiner}
}

type joinRequestBody struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Join — POST /tournaments/{id}/join. Единый контракт: комнатные данные
// возвращаются в теле ответа вместе с id и joined_count.
func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var body joinRequestBody
	if err := readJSON(w, r, &body); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if body.UserID < 1 {
		errorResponse(w, r, http.StatusBadRequest, "user_id is required")
		return
	}

	result, err := h.joiner.Join(r.Context(), tournamentID, body.UserID, services.JoinRequest{
		Username: body.Username,
		Email:    body.Email,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req services.CreateTournamentRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	t, err := h.tournaments.CreateRequest(r.Context(), req)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, t, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournaments.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, t, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := models.TournamentStatus(strings.ToLower(chi.URLParam(r, "status")))
	h.writeList(w, r, func(ctx context.Context) ([]models.Tournament, error) {
		return h.tournaments.ListByStatus(ctx, status)
	})
}

func (h *TournamentHandler) ListLive(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func(ctx context.Context) ([]models.Tournament, error) {
		return h.tournaments.ListByStatus(ctx, models.StatusLive)
	})
}

func (h *TournamentHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, func(ctx context.Context) ([]models.Tournament, error) {
		return h.tournaments.ListByStatus(ctx, models.StatusScheduled)
	})
}

func (h *TournamentHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.writeList(w, r, h.tournaments.ListPublic)
}

func (h *TournamentHandler) ListHosted(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	h.writeList(w, r, func(ctx context.Context) ([]models.Tournament, error) {
		return h.tournaments.ListHostedBy(ctx, username)
	})
}

func (h *TournamentHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	participants, err := h.tournaments.ListParticipants(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, participants, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Start — PUT /tournaments/{id}/start: scheduled → live.
func (h *TournamentHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	t, err := h.tournaments.Start(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, t, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Complete — PUT /tournaments/{id}/complete?winner=...&prizeDelivered=true
func (h *TournamentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var winner *string
	if v := r.URL.Query().Get("winner"); strings.TrimSpace(v) != "" {
		winner = &v
	}
	prizeDelivered := r.URL.Query().Get("prizeDelivered") == "true"

	t, err := h.tournaments.Complete(r.Context(), id, winner, prizeDelivered)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, t, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadBanner — POST /tournaments/{id}/banner, multipart поле "banner".
func (h *TournamentHandler) UploadBanner(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	file, header, err := r.FormFile("banner")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	t, err := h.tournaments.UploadBanner(r.Context(), id, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, t, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) writeList(w http.ResponseWriter, r *http.Request, list func(ctx context.Context) ([]models.Tournament, error)) {
	tournaments, err := list(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournaments, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
