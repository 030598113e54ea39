package service

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Cache keys are composed deterministically from the operation name and the
// normalized argument set, so semantically identical requests always map to
// the same key regardless of incidental formatting in the caller's input.
// The key builders are shared by the dispatcher and the resource reader:
// a resource read addresses exactly the key its producing tool would fill.

// NormalizeQuery folds case and collapses whitespace. Both upstream query
// endpoints are case-insensitive for free-text queries.
func NormalizeQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(q), " "))
}

// NormalizeTitle collapses whitespace and upper-cases the first rune only:
// MediaWiki titles are case-sensitive except for the leading letter.
func NormalizeTitle(t string) string {
	s := strings.Join(strings.Fields(t), " ")
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// SearchKey keys one web search.
func SearchKey(query string, num int) string {
	return OpGoogleSearch + ":" + NormalizeQuery(query) + ":" + strconv.Itoa(num)
}

// FetchKey keys one page fetch. URLs are not case-folded: paths are
// case-sensitive on most hosts.
func FetchKey(url string, maxLength int) string {
	return OpFetchPage + ":" + strings.TrimSpace(url) + ":" + strconv.Itoa(maxLength)
}

// WikiSearchKey keys one encyclopedia search.
func WikiSearchKey(query string, limit int) string {
	return OpWikiSearch + ":" + NormalizeQuery(query) + ":" + strconv.Itoa(limit)
}

// SummaryKey keys one sentence-bounded extract.
func SummaryKey(title string, sentences int) string {
	return OpWikiSummary + ":" + NormalizeTitle(title) + ":" + strconv.Itoa(sentences)
}

// ArticleKey keys one full-article extract.
func ArticleKey(title string) string {
	return OpWikiArticle + ":" + NormalizeTitle(title)
}
