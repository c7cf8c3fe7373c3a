package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org/search"

// minImportance is the relevance floor below which a geocoded result is not
// worth an info box.
const minImportance = 0.3

// allowedClasses are the place categories relevant enough to display.
var allowedClasses = map[string]bool{
	"place":    true,
	"boundary": true,
	"building": true,
	"amenity":  true,
	"tourism":  true,
	"highway":  true,
	"shop":     true,
	"leisure":  true,
	"natural":  true,
	"historic": true,
}

// Place is one Nominatim candidate. Coordinates stay provider strings; the
// composer renders them verbatim.
type Place struct {
	DisplayName string            `json:"display_name"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	Class       string            `json:"class"`
	Type        string            `json:"type"`
	Importance  float64           `json:"importance"`
	Address     map[string]string `json:"address"`
	ExtraTags   map[string]string `json:"extratags"`
}

// Client looks up places on Nominatim. Results are supplementary, so every
// failure degrades to "no result" instead of an error.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(contactMail string, logger *logrus.Logger) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		// Nominatim requires a descriptive client identifier with a
		// contact address.
		userAgent: fmt.Sprintf("minisearch/1.0 (contact: %s)", contactMail),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Lookup requests at most one candidate for query and reports whether a
// sufficiently relevant, allow-listed place was found.
func (c *Client) Lookup(ctx context.Context, query string) (*Place, bool) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")
	params.Set("extratags", "1")

	fullURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", fullURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Debug("place lookup failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithField("status", resp.StatusCode).Debug("place lookup returned an error status")
		return nil, false
	}

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		c.logger.WithError(err).Debug("decoding place lookup response failed")
		return nil, false
	}
	if len(places) == 0 {
		return nil, false
	}

	place := &places[0]
	if !relevant(place) {
		return nil, false
	}
	return place, true
}

func relevant(p *Place) bool {
	return allowedClasses[p.Class] && p.Importance >= minImportance
}
