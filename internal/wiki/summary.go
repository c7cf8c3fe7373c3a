package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Summary is the per-article payload from the Wikipedia REST summary
// endpoint.
type Summary struct {
	Title     string     `json:"title"`
	Extract   string     `json:"extract"`
	Thumbnail *Thumbnail `json:"thumbnail"`
}

type Thumbnail struct {
	Source string `json:"source"`
}

// Client fetches article summaries. Summaries are supplementary, so every
// failure degrades to "no summary" instead of an error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

func (c *Client) summaryURL(lang, title string) string {
	if c.baseURL != "" {
		return fmt.Sprintf("%s/api/rest_v1/page/summary/%s", c.baseURL, url.PathEscape(title))
	}
	return fmt.Sprintf("https://%s.wikipedia.org/api/rest_v1/page/summary/%s", lang, url.PathEscape(title))
}

// Summary fetches the summary for title in the given language edition and
// reports whether one was available.
func (c *Client) Summary(ctx context.Context, lang, title string) (*Summary, bool) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.summaryURL(lang, title), nil)
	if err != nil {
		return nil, false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithError(err).Debug("summary fetch failed")
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"title":  title,
		}).Debug("summary fetch returned an error status")
		return nil, false
	}

	var summary Summary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		c.logger.WithError(err).Debug("decoding summary failed")
		return nil, false
	}

	return &summary, true
}

// ShortenExtract keeps only the first maxSentences sentences of text. A
// sentence ends at '.', '!' or '?' followed by whitespace.
func ShortenExtract(text string, maxSentences int) string {
	if maxSentences <= 0 {
		return ""
	}

	count := 0
	for i := 0; i+1 < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			if !isSpace(text[i+1]) {
				continue
			}
			count++
			if count == maxSentences {
				return text[:i+1]
			}
		}
	}
	return text
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
