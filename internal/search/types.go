package search

// Kind selects the search mode on the provider.
type Kind string

const (
	KindWeb   Kind = "web"
	KindImage Kind = "image"
)

// Response models the provider payload for one search call. Only the fields
// the composer consumes are mapped.
type Response struct {
	Items             []Item             `json:"items"`
	SearchInformation *SearchInformation `json:"searchInformation"`
	Queries           Queries            `json:"queries"`
}

type Item struct {
	Title       string     `json:"title"`
	Link        string     `json:"link"`
	DisplayLink string     `json:"displayLink"`
	Snippet     string     `json:"snippet"`
	Image       *ItemImage `json:"image,omitempty"`
}

// ItemImage is only populated in image mode.
type ItemImage struct {
	ThumbnailLink string `json:"thumbnailLink"`
	ContextLink   string `json:"contextLink"`
}

type SearchInformation struct {
	FormattedTotalResults string `json:"formattedTotalResults"`
	FormattedSearchTime   string `json:"formattedSearchTime"`
}

type Queries struct {
	NextPage     []PageCursor `json:"nextPage"`
	PreviousPage []PageCursor `json:"previousPage"`
}

type PageCursor struct {
	StartIndex int `json:"startIndex"`
}
