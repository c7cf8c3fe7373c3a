package api

import (
	"context"
	"html/template"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tmarchal/minisearch/internal/compose"
	"github.com/tmarchal/minisearch/internal/counter"
	"github.com/tmarchal/minisearch/internal/monitoring"
)

// PageComposer turns one query into a display-ready page.
type PageComposer interface {
	Web(ctx context.Context, query string, start int) *compose.WebPage
	Images(ctx context.Context, query string, start int) *compose.ImagePage
}

type App struct {
	Composer    PageComposer
	Counter     *counter.Daily
	Logger      *logrus.Logger
	Metrics     *monitoring.Metrics
	Health      *monitoring.HealthChecker
	TemplateDir string
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type webView struct {
	*compose.WebPage
	Mode  string
	Count int
}

type imageView struct {
	*compose.ImagePage
	Mode  string
	Count int
}

func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	start := parseStart(r.URL.Query().Get("start"))

	page := &compose.WebPage{Query: q}
	if q != "" {
		page = app.Composer.Web(r.Context(), q, start)
	}

	app.render(w, "links.html", webView{
		WebPage: page,
		Mode:    "web",
		Count:   app.Counter.Count(),
	})
}

func (app *App) ImagesHandler(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	start := parseStart(r.URL.Query().Get("start"))

	page := &compose.ImagePage{Query: q}
	if q != "" {
		page = app.Composer.Images(r.Context(), q, start)
	}

	app.render(w, "images.html", imageView{
		ImagePage: page,
		Mode:      "images",
		Count:     app.Counter.Count(),
	})
}

func (app *App) render(w http.ResponseWriter, name string, data interface{}) {
	dir := app.TemplateDir
	if dir == "" {
		dir = filepath.Join("web", "templates")
	}

	tmpl, err := template.ParseFiles(filepath.Join(dir, name))
	if err != nil {
		app.Logger.WithError(err).Error("loading template failed")
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	if err := tmpl.Execute(w, data); err != nil {
		app.Logger.WithError(err).Error("rendering template failed")
	}
}

func parseStart(raw string) int {
	start, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return start
}
