package routes

import (
	"net/http"

	"github.com/Askhat-B/esports-hub/handlers"
	"github.com/Askhat-B/esports-hub/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRoutes собирает все маршруты приложения на переданном роутере.
func SetupRoutes(
	router *chi.Mux,
	auth *middleware.Authenticator,
	userHandler *handlers.UserHandler,
	tournamentHandler *handlers.TournamentHandler,
	complaintHandler *handlers.ComplaintHandler,
	resultHandler *handlers.ResultHandler,
	adminHandler *handlers.AdminHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	router.Post("/users/signup", userHandler.Register)
	router.Post("/users/signin", userHandler.Login)

	router.Route("/users", func(r chi.Router) {
		r.With(auth.Authenticate).Get("/", userHandler.List)
		r.With(auth.Authenticate).Get("/{id}", userHandler.GetByID)
	})

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", tournamentHandler.ListPublic)
		r.Get("/live", tournamentHandler.ListLive)
		r.Get("/upcoming", tournamentHandler.ListUpcoming)
		r.Get("/status/{status}", tournamentHandler.ListByStatus)
		r.Get("/{id}", tournamentHandler.GetByID)
		r.Get("/{id}/participants", tournamentHandler.ListParticipants)
		r.Get("/{id}/result", resultHandler.Get)

		// Защищённые маршруты
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticate)

			r.Post("/", tournamentHandler.CreateRequest)
			r.Get("/hosted/{username}", tournamentHandler.ListHosted)
			r.Post("/{id}/join", tournamentHandler.Join)
			r.Put("/{id}/start", tournamentHandler.Start)
			r.Put("/{id}/complete", tournamentHandler.Complete)
			r.Post("/{id}/banner", tournamentHandler.UploadBanner)
			r.Put("/{id}/result", resultHandler.Save)
		})
	})

	router.With(auth.Authenticate).Post("/complaints", complaintHandler.Submit)

	router.Route("/admin", func(r chi.Router) {
		r.Use(auth.Authenticate)
		r.Use(middleware.RequireRole("admin"))

		r.Get("/dashboard", adminHandler.DashboardSummary)
		r.Get("/tournaments/pending", adminHandler.ListPending)
		r.Get("/tournaments/official", adminHandler.ListOfficial)
		r.Post("/tournaments/official", adminHandler.CreateOfficial)
		r.Put("/tournaments/{id}/approve", adminHandler.Approve)
		r.Put("/tournaments/{id}/reject", adminHandler.Reject)
		r.Get("/complaints", adminHandler.ListComplaints)
		r.Put("/complaints/{id}/resolve", adminHandler.ResolveComplaint)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
}
