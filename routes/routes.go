package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/chess-league/docs"
	"github.com/Dosada05/chess-league/handlers"
	"github.com/Dosada05/chess-league/middleware"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	groupHandler *handlers.GroupHandler,
	gameHandler *handlers.GameHandler,
	reportHandler *handlers.ReportHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", handlers.HeaderArchiveURL},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	organizerOnly := func(r chi.Router) {
		r.Use(middleware.Authenticate(opts.JWTSecret))
		r.Use(middleware.Authorize(middleware.RoleOrganizer, middleware.RoleAdmin))
	}

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/ws/groups/{groupID}", webSocketHandler.ServeWs)

	router.Route("/groups", func(r chi.Router) {
		r.Get("/{groupID}", groupHandler.GetHandler)
		r.Get("/{groupID}/participants", groupHandler.ListParticipantsHandler)
		r.Get("/{groupID}/standings", groupHandler.StandingsHandler)
		r.Get("/{groupID}/games", groupHandler.FixturesHandler)

		r.Group(func(r chi.Router) {
			organizerOnly(r)
			r.Post("/", groupHandler.CreateHandler)
			r.Post("/{groupID}/participants", groupHandler.AddParticipantHandler)
			r.Post("/{groupID}/schedule", groupHandler.GenerateScheduleHandler)
			r.Get("/{groupID}/export/{format}", reportHandler.ExportHandler)
		})
	})

	router.Route("/games", func(r chi.Router) {
		organizerOnly(r)
		r.Patch("/{gameID}/result", gameHandler.ResultHandler)
		r.Patch("/{gameID}/date", gameHandler.DateHandler)
	})

	router.Group(func(r chi.Router) {
		organizerOnly(r)
		r.Patch("/participants/{participantID}/withdrawal", groupHandler.WithdrawalHandler)
	})
}
