package models

// OmdbMovie is a full record from the OMDb API. Keys are passed through to
// clients unchanged, so the JSON tags follow the provider's casing.
type OmdbMovie struct {
	Response string `json:"Response,omitempty"`
	Error    string `json:"Error,omitempty"`

	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Rated      string `json:"Rated,omitempty"`
	Released   string `json:"Released,omitempty"`
	Runtime    string `json:"Runtime,omitempty"`
	Genre      string `json:"Genre"`
	Director   string `json:"Director,omitempty"`
	Actors     string `json:"Actors,omitempty"`
	Plot       string `json:"Plot"`
	Language   string `json:"Language,omitempty"`
	Country    string `json:"Country,omitempty"`
	Poster     string `json:"Poster"`
	Metascore  string `json:"Metascore,omitempty"`
	ImdbRating string `json:"imdbRating"`
	ImdbVotes  string `json:"imdbVotes,omitempty"`
	ImdbID     string `json:"imdbID"`
	Type       string `json:"Type,omitempty"`
}

// OmdbSearchResult is one brief entry from the OMDb "s" search endpoint.
// Seed records which discovery seed word produced the entry and is only set
// by the diversity queue builder.
type OmdbSearchResult struct {
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	ImdbID string `json:"imdbID"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`
	Seed   string `json:"_seed,omitempty"`
}

type OmdbSearchResponse struct {
	Response     string             `json:"Response"`
	Error        string             `json:"Error,omitempty"`
	Search       []OmdbSearchResult `json:"Search"`
	TotalResults string             `json:"totalResults,omitempty"`
}
