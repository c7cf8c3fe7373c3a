package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(app.logRequests)

	r.Get("/", app.HomeHandler)
	r.Get("/images", app.ImagesHandler)
	r.Get("/ping", PingHandler)
	r.Get("/healthz", app.Health.Handler())
	r.Handle("/metrics", app.Metrics.Handler())

	fileServer := http.FileServer(http.Dir("./web/static"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	return r
}
