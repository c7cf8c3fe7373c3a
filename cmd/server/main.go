package main

import (
	"net/http"
	"os"
	"time"

	"github.com/tmarchal/minisearch/internal/api"
	"github.com/tmarchal/minisearch/internal/cache"
	"github.com/tmarchal/minisearch/internal/compose"
	"github.com/tmarchal/minisearch/internal/config"
	"github.com/tmarchal/minisearch/internal/counter"
	"github.com/tmarchal/minisearch/internal/geo"
	"github.com/tmarchal/minisearch/internal/logging"
	"github.com/tmarchal/minisearch/internal/monitoring"
	"github.com/tmarchal/minisearch/internal/search"
	"github.com/tmarchal/minisearch/internal/wiki"
)

const version = "1.0.0"

func main() {
	logger := logging.New("minisearch")
	config.LoadEnv(logger)

	port := config.GetEnv("PORT", "8080")
	apiKey := os.Getenv("GOOGLE_API_KEY")
	cseID := os.Getenv("GOOGLE_CSE_ID")
	contactMail := os.Getenv("CONTACT_MAIL")

	cacheTTL := time.Duration(config.GetEnvInt("CACHE_TTL_SECONDS", 60)) * time.Second

	tzName := config.GetEnv("COUNTER_TIMEZONE", "Local")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		logger.WithError(err).Fatalf("Invalid COUNTER_TIMEZONE: %s", tzName)
	}

	metrics := monitoring.NewMetrics("minisearch")
	store := cache.New(cacheTTL)
	calls := counter.New(loc)

	searchClient := search.NewClient(apiKey, cseID, store, calls, metrics, logger)
	wikiClient := wiki.NewClient(logger)
	geoClient := geo.NewClient(contactMail, logger)
	composer := compose.New(searchClient, wikiClient, geoClient, logger)

	health := monitoring.NewHealthChecker("minisearch", version)
	health.AddCheck("search_credentials", func() monitoring.CheckResult {
		if apiKey == "" || cseID == "" {
			return monitoring.CheckResult{
				Status:  monitoring.StatusDegraded,
				Message: "GOOGLE_API_KEY or GOOGLE_CSE_ID not set",
			}
		}
		return monitoring.CheckResult{Status: monitoring.StatusHealthy}
	})

	app := &api.App{
		Composer: composer,
		Counter:  calls,
		Logger:   logger,
		Metrics:  metrics,
		Health:   health,
	}
	router := api.NewRouter(app)

	if apiKey == "" || cseID == "" {
		logger.Warn("Search credentials not configured. Set GOOGLE_API_KEY and GOOGLE_CSE_ID")
	}
	if contactMail == "" {
		logger.Warn("CONTACT_MAIL not set; the place lookup User-Agent will carry no contact address")
	}

	logger.WithField("port", port).Info("Server starting")
	logger.WithField("ttl", cacheTTL.String()).Info("Response cache enabled")
	logger.WithField("timezone", tzName).Info("Daily counter timezone")

	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal(err)
	}
}
