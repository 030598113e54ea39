// Package search holds the typed payloads returned by the web-search provider.
package search

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Results is the decoded payload of one search call. It is stored in the
// search pool as an immutable JSON snapshot.
type Results struct {
	Query        string   `json:"query"`
	TotalResults string   `json:"total_results,omitempty"`
	Results      []Result `json:"results"`
}
