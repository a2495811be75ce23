package routes

import (
	"net/http"

	"github.com/clubedopeao/tournament-api/handlers"
	"github.com/clubedopeao/tournament-api/middleware"
	"github.com/clubedopeao/tournament-api/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Board      *handlers.BoardHandler
	Session    *handlers.SessionHandler
	Tournament *handlers.TournamentHandler
	Public     *handlers.PublicHandler
	Audit      *handlers.AuditHandler
	WebSocket  *handlers.WebSocketHandler
}

func SetupRoutes(router *chi.Mux, h Handlers, jwtSecret string) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
	router.Get("/swagger/doc.json", handlers.ServeOpenAPIDoc)

	router.Post("/auth/login", h.Auth.Login)

	// Public read endpoints for the club site.
	router.Route("/public", func(r chi.Router) {
		r.Get("/players/ratings", h.Public.ListRatings)
		r.Get("/players/top", h.Public.TopPlayers)
		r.Get("/tournaments/ongoing", h.Public.OngoingTournament)
		r.Get("/tournaments/finished", h.Public.FinishedTournaments)
		r.Get("/tournaments/{tournamentID}/standings", h.Public.Standings)
		r.Get("/sessions/open", h.Public.OpenSessions)
	})

	// Player self-service check-in does not require a referee login.
	router.Route("/sessions/{sessionID}/checkins", func(r chi.Router) {
		r.Get("/", h.Session.ListCheckins)
		r.Post("/", h.Session.Checkin)
		r.Delete("/", h.Session.CancelCheckin)
	})

	// Live board updates for any viewer of a session.
	router.Get("/ws/sessions/{sessionID}", h.WebSocket.ServeBoard)

	// Referee console. Every route below requires a valid token.
	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))
		r.Use(middleware.Authorize(models.RoleAdmin, models.RoleReferee))

		r.Get("/me", h.Auth.Me)

		r.Get("/sessions", h.Session.ListOpen)
		r.Post("/sessions/{sessionID}/pairings", h.Session.GeneratePairings)

		r.Get("/sessions/{sessionID}/board", h.Board.GetBoard)
		r.Post("/sessions/{sessionID}/pairings/{pairingID}/intent", h.Board.OpenIntent)
		r.Delete("/sessions/{sessionID}/pairings/{pairingID}/intent", h.Board.CancelIntent)
		r.Post("/sessions/{sessionID}/pairings/{pairingID}/confirm", h.Board.ConfirmIntent)

		r.Get("/matches/recent", h.Board.RecentMatches)

		// Destructive and administrative operations.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authorize(models.RoleAdmin))

			r.Post("/sessions", h.Session.Create)
			r.Post("/sessions/{sessionID}/close", h.Session.Close)
			r.Post("/matches/{matchID}/rollback", h.Board.Rollback)
			r.Get("/rollbacks", h.Audit.ListRollbacks)
			r.Post("/tournaments/{tournamentID}/logo", h.Tournament.UploadLogo)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"the requested resource could not be found"}`, http.StatusNotFound)
	})
}
