package discogs

// Artist is an artist entry on a release. On extraartists lists the
// Role field carries the free-text credit role.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	ANV  string `json:"anv"`
	Role string `json:"role"`
}

// Label is a label entry with its catalog number.
type Label struct {
	Name  string `json:"name"`
	Catno string `json:"catno"`
}

// Format describes a pressing format.
type Format struct {
	Name         string   `json:"name"`
	Qty          string   `json:"qty"`
	Descriptions []string `json:"descriptions"`
}

// Identifier is a release identifier such as a barcode or matrix code.
type Identifier struct {
	Type        string `json:"type"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Track is one tracklist entry with its per-track credits.
type Track struct {
	Position     string   `json:"position"`
	Title        string   `json:"title"`
	Duration     string   `json:"duration"`
	ExtraArtists []Artist `json:"extraartists"`
}

// Release is the API payload for a specific pressing.
type Release struct {
	ID           int64        `json:"id"`
	Title        string       `json:"title"`
	URI          string       `json:"uri"`
	Year         int          `json:"year"`
	Released     string       `json:"released"`
	Country      string       `json:"country"`
	Artists      []Artist     `json:"artists"`
	ExtraArtists []Artist     `json:"extraartists"`
	Labels       []Label      `json:"labels"`
	Formats      []Format     `json:"formats"`
	Identifiers  []Identifier `json:"identifiers"`
	Genres       []string     `json:"genres"`
	Styles       []string     `json:"styles"`
	Tracklist    []Track      `json:"tracklist"`
	MasterID     int64        `json:"master_id"`
	MasterURL    string       `json:"master_url"`
}

// Master is the API payload for a master edition. MainRelease points at
// the original pressing.
type Master struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	URI         string   `json:"uri"`
	Year        int      `json:"year"`
	MainRelease int64    `json:"main_release"`
	Artists     []Artist `json:"artists"`
	Genres      []string `json:"genres"`
	Styles      []string `json:"styles"`
	Tracklist   []Track  `json:"tracklist"`
}

// SearchResult is one database search hit.
type SearchResult struct {
	ID      int64    `json:"id"`
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	URI     string   `json:"uri"`
	Year    string   `json:"year"`
	Country string   `json:"country"`
	Catno   string   `json:"catno"`
	Barcode []string `json:"barcode"`
}

// SearchResponse models the paginated search payload.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
