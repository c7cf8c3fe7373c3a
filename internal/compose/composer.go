package compose

import (
	"context"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/tmarchal/minisearch/internal/geo"
	"github.com/tmarchal/minisearch/internal/search"
	"github.com/tmarchal/minisearch/internal/wiki"
)

const resultsPerPage = 10

const summarySentences = 3

// Searcher runs one upstream search call.
type Searcher interface {
	Search(ctx context.Context, query string, start, num int, kind search.Kind) (*search.Response, error)
}

// Summarizer fetches an encyclopedia summary, reporting absence instead of
// errors.
type Summarizer interface {
	Summary(ctx context.Context, lang, title string) (*wiki.Summary, bool)
}

// PlaceFinder looks up a place, reporting absence instead of errors.
type PlaceFinder interface {
	Lookup(ctx context.Context, query string) (*geo.Place, bool)
}

// Composer orchestrates one query across the search client, the encyclopedia
// summary fetch and the place lookup, merging them into one display-ready
// page. Only the primary search call can fail the page; both info boxes are
// best-effort.
type Composer struct {
	search Searcher
	wiki   Summarizer
	geo    PlaceFinder
	logger *logrus.Logger
}

func New(searcher Searcher, summarizer Summarizer, places PlaceFinder, logger *logrus.Logger) *Composer {
	return &Composer{
		search: searcher,
		wiki:   summarizer,
		geo:    places,
		logger: logger,
	}
}

// WebPage is the display-ready aggregate for one web-search query.
type WebPage struct {
	Query     string
	Results   []WebResult
	Info      *search.SearchInformation
	Error     string
	PrevStart int // 0 = no previous page
	NextStart int // 0 = no next page
	WikiBox   *WikiBox
	PlaceBox  *PlaceBox
}

type WebResult struct {
	Title       string
	Link        string
	DisplayLink string
	Snippet     string
	Favicon     string
}

// WikiBox is the encyclopedia info box shown next to the results.
type WikiBox struct {
	Title     string
	Extract   string
	Thumbnail string
	Link      string
}

// PlaceBox is the place info box shown next to the results.
type PlaceBox struct {
	DisplayName  string
	Lat          string
	Lon          string
	Type         string
	Road         string
	Postcode     string
	City         string
	Country      string
	OpeningHours string
}

// ImagePage is the display-ready aggregate for one image-search query.
type ImagePage struct {
	Query     string
	Results   []ImageResult
	Error     string
	PrevStart int
	NextStart int
}

type ImageResult struct {
	Link      string
	Thumbnail string
	Context   string
}

// Web composes one web-search page. A search failure short-circuits the whole
// composition into a user-facing error message.
func (c *Composer) Web(ctx context.Context, query string, start int) *WebPage {
	page := &WebPage{Query: query}

	resp, err := c.search.Search(ctx, query, start, resultsPerPage, search.KindWeb)
	if err != nil {
		page.Error = err.Error()
		return page
	}

	for _, item := range resp.Items {
		title := item.Title
		if title == "" {
			title = "(untitled)"
		}
		link := item.Link
		if link == "" {
			link = "#"
		}
		page.Results = append(page.Results, WebResult{
			Title:       title,
			Link:        link,
			DisplayLink: item.DisplayLink,
			Snippet:     item.Snippet,
			Favicon:     faviconURL(link),
		})
	}

	page.Info = resp.SearchInformation
	page.PrevStart, page.NextStart = cursors(resp)

	if len(page.Results) > 0 {
		page.WikiBox = c.wikiBox(ctx, page.Results[0])
	}

	if place, ok := c.geo.Lookup(ctx, query); ok {
		page.PlaceBox = placeBox(place)
	}

	return page
}

// Images composes one image-search page. No encyclopedia or place boxes are
// attempted for images.
func (c *Composer) Images(ctx context.Context, query string, start int) *ImagePage {
	page := &ImagePage{Query: query}

	resp, err := c.search.Search(ctx, query, start, resultsPerPage, search.KindImage)
	if err != nil {
		page.Error = err.Error()
		return page
	}

	for _, item := range resp.Items {
		link := item.Link
		if link == "" {
			link = "#"
		}
		result := ImageResult{Link: link, Thumbnail: link, Context: link}
		if item.Image != nil {
			if item.Image.ThumbnailLink != "" {
				result.Thumbnail = item.Image.ThumbnailLink
			}
			if item.Image.ContextLink != "" {
				result.Context = item.Image.ContextLink
			}
		}
		page.Results = append(page.Results, result)
	}

	page.PrevStart, page.NextStart = cursors(resp)

	return page
}

// wikiBox builds the encyclopedia box when the top result points at a
// Wikipedia article. Any fetch failure simply omits the box.
func (c *Composer) wikiBox(ctx context.Context, top WebResult) *WikiBox {
	parsed, err := url.Parse(top.Link)
	if err != nil || !strings.Contains(parsed.Host, "wikipedia.org") {
		return nil
	}

	segments := strings.Split(parsed.Path, "/")
	title := segments[len(segments)-1] // /wiki/Albert_Einstein
	if decoded, err := url.PathUnescape(title); err == nil {
		title = decoded
	}
	if title == "" {
		return nil
	}

	lang := editionFromHost(parsed.Host)

	summary, ok := c.wiki.Summary(ctx, lang, title)
	if !ok {
		return nil
	}

	extract := summary.Extract
	if extract == "" {
		extract = top.Snippet
	}

	box := &WikiBox{
		Title:   summary.Title,
		Extract: wiki.ShortenExtract(extract, summarySentences),
		Link:    top.Link,
	}
	if box.Title == "" {
		box.Title = top.Title
	}
	if summary.Thumbnail != nil {
		box.Thumbnail = summary.Thumbnail.Source
	}
	return box
}

// editionFromHost derives the language edition from the subdomain, defaulting
// to "en" when the host carries none.
func editionFromHost(host string) string {
	lang, _, found := strings.Cut(host, ".")
	if !found || lang == "" || lang == "www" || lang == "wikipedia" {
		return "en"
	}
	return lang
}

func placeBox(place *geo.Place) *PlaceBox {
	addr := place.Address
	city := addr["city"]
	if city == "" {
		city = addr["town"]
	}
	if city == "" {
		city = addr["village"]
	}

	return &PlaceBox{
		DisplayName:  place.DisplayName,
		Lat:          place.Lat,
		Lon:          place.Lon,
		Type:         place.Type,
		Road:         addr["road"],
		Postcode:     addr["postcode"],
		City:         city,
		Country:      addr["country"],
		OpeningHours: place.ExtraTags["opening_hours"],
	}
}

func cursors(resp *search.Response) (prev, next int) {
	if len(resp.Queries.PreviousPage) > 0 {
		prev = resp.Queries.PreviousPage[0].StartIndex
	}
	if len(resp.Queries.NextPage) > 0 {
		next = resp.Queries.NextPage[0].StartIndex
	}
	return prev, next
}

func faviconURL(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return ""
	}
	return "https://www.google.com/s2/favicons?sz=32&domain=" + parsed.Host
}
