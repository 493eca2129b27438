package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/willowmind/companion-backend/internal/handler/chat"
	moodHandler "github.com/willowmind/companion-backend/internal/handler/mood"
	middlewarePkg "github.com/willowmind/companion-backend/internal/middleware"
	moodModel "github.com/willowmind/companion-backend/internal/model/mood"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(dispatcher chatHandler.Dispatcher, moods moodModel.Store, trends moodHandler.TrendChart, mediaDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(dispatcher).RegisterRoutes(api)
		moodHandler.New(moods, trends).RegisterRoutes(api)
	})

	// Generated audio and chart artifacts are served from the media dir.
	fileServer := http.StripPrefix("/static/", http.FileServer(http.Dir(mediaDir)))
	r.Get("/static/*", fileServer.ServeHTTP)

	return r
}
