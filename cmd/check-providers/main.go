package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tmarchal/minisearch/internal/cache"
	"github.com/tmarchal/minisearch/internal/config"
	"github.com/tmarchal/minisearch/internal/counter"
	"github.com/tmarchal/minisearch/internal/geo"
	"github.com/tmarchal/minisearch/internal/search"
	"github.com/tmarchal/minisearch/internal/wiki"
)

// check-providers runs one live call against each upstream and reports what
// the server would see. Useful before deploying a new set of credentials.
func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	config.LoadEnv(logger)

	apiKey := os.Getenv("GOOGLE_API_KEY")
	cseID := os.Getenv("GOOGLE_CSE_ID")
	contactMail := os.Getenv("CONTACT_MAIL")

	fmt.Println("🔍 Checking upstream providers")
	fmt.Println("==============================")

	if apiKey == "" || cseID == "" {
		fmt.Println("⚠️  Search credentials missing!")
		fmt.Println("   Set GOOGLE_API_KEY and GOOGLE_CSE_ID")
	} else {
		fmt.Println("✅ Search credentials configured")
	}
	if contactMail == "" {
		fmt.Println("⚠️  CONTACT_MAIL not set; Nominatim requests will carry no contact address")
	} else {
		fmt.Printf("✅ Nominatim contact: %s\n", contactMail)
	}
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	searchClient := search.NewClient(apiKey, cseID, cache.New(time.Minute), counter.New(time.UTC), nil, logger)
	if resp, err := searchClient.Search(ctx, "golang", 1, 3, search.KindWeb); err != nil {
		fmt.Printf("❌ Web search: %v\n", err)
	} else {
		fmt.Printf("✅ Web search: %d results\n", len(resp.Items))
	}

	wikiClient := wiki.NewClient(logger)
	if summary, ok := wikiClient.Summary(ctx, "en", "Albert_Einstein"); ok {
		fmt.Printf("✅ Encyclopedia summary: %q\n", summary.Title)
	} else {
		fmt.Println("❌ Encyclopedia summary: unavailable")
	}

	geoClient := geo.NewClient(contactMail, logger)
	if place, ok := geoClient.Lookup(ctx, "Eiffel Tower"); ok {
		fmt.Printf("✅ Place lookup: %s (%s, %s)\n", place.DisplayName, place.Lat, place.Lon)
	} else {
		fmt.Println("❌ Place lookup: no relevant result")
	}
}
