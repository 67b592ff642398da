package handlers

import (
	"context"
	"net/http"

	"github.com/Askhat-B/esports-hub/models"
	"github.com/Askhat-B/esports-hub/services"
)

type UserProvider interface {
	Register(ctx context.Context, req services.RegisterUserRequest) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*services.AuthResult, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type UserHandler struct {
	users UserProvider
}

func NewUserHandler(users UserProvider) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterUserRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), req)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := readJSON(w, r, &creds); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.users.Authenticate(r.Context(), creds.Username, creds.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, user, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, users, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
