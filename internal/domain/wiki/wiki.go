// Package wiki holds the typed payloads returned by the encyclopedia provider.
package wiki

// SearchHit is a single encyclopedia search match.
type SearchHit struct {
	Title     string `json:"title"`
	Snippet   string `json:"snippet"`
	PageID    int    `json:"page_id"`
	WordCount int    `json:"word_count,omitempty"`
}

// SearchResults is the decoded payload of one encyclopedia search call.
type SearchResults struct {
	Query string      `json:"query"`
	Hits  []SearchHit `json:"hits"`
}

// Article is a plaintext extract of an encyclopedia page. Summary calls carry
// a sentence-bounded extract; article calls carry the full page text.
type Article struct {
	Title    string `json:"title"`
	PageID   int    `json:"page_id"`
	Language string `json:"language"`
	Extract  string `json:"extract"`
}
