package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ersonp/brandgraph/internal/domain/entities"
)

const (
	// DefaultContextWindow is how many runes to keep on each side of a match.
	DefaultContextWindow = 100
	// minContextLen drops windows too short to carry signal for tagging.
	minContextLen = 10
	// maxContextComments bounds how many comments per thread are scanned.
	maxContextComments = 20
)

// Document is one searchable block of source text.
type Document struct {
	Label string
	Text  string
}

// ExtractContexts scans every document for occurrences of target and returns a
// bounded window of original text around each one, in document order then
// occurrence order. Matching happens in normalized space (lowercase,
// alphanumeric-only) so punctuation and casing differences still match; the
// returned windows are cut from the original text. A target that normalizes to
// the empty string matches nothing.
func ExtractContexts(docs []Document, target string, window int) []string {
	needle := []rune(Normalize(target))
	if len(needle) == 0 {
		return nil
	}
	if window <= 0 {
		window = DefaultContextWindow
	}

	var contexts []string
	for _, doc := range docs {
		if doc.Text == "" {
			continue
		}
		contexts = append(contexts, documentContexts(doc.Text, needle, window)...)
	}
	return contexts
}

// documentContexts finds every non-overlapping occurrence of needle in the
// normalized text and maps each match back to a window in the original.
func documentContexts(text string, needle []rune, window int) []string {
	orig := []rune(text)

	// Normalized rune stream plus, for each normalized rune, the index of the
	// original rune it came from.
	norm := make([]rune, 0, len(orig))
	origIdx := make([]int, 0, len(orig))
	for i, r := range orig {
		lr := unicode.ToLower(r)
		if unicode.IsLetter(lr) || unicode.IsDigit(lr) {
			norm = append(norm, lr)
			origIdx = append(origIdx, i)
		}
	}

	var contexts []string
	for pos := indexRunes(norm, needle, 0); pos >= 0; pos = indexRunes(norm, needle, pos+len(needle)) {
		at := origIdx[pos]
		start := at - window
		if start < 0 {
			start = 0
		}
		end := at + window
		if end > len(orig) {
			end = len(orig)
		}
		context := strings.TrimSpace(string(orig[start:end]))
		if utf8.RuneCountInString(context) < minContextLen {
			continue
		}
		contexts = append(contexts, context)
	}
	return contexts
}

// indexRunes returns the index of the first occurrence of needle in haystack
// at or after from, or -1.
func indexRunes(haystack, needle []rune, from int) int {
	for i := from; i+len(needle) <= len(haystack); i++ {
		match := true
		for j, r := range needle {
			if haystack[i+j] != r {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// ThreadDocuments flattens a thread into searchable documents: title, body,
// then the first maxContextComments comments.
func ThreadDocuments(thread *entities.Thread) []Document {
	docs := []Document{
		{Label: "title", Text: thread.Post.Title},
		{Label: "post", Text: thread.FullSelftext},
	}
	for i, comment := range thread.Comments {
		if i >= maxContextComments {
			break
		}
		if comment.Body == "" {
			continue
		}
		docs = append(docs, Document{Label: fmt.Sprintf("comment_%d", i), Text: comment.Body})
	}
	return docs
}

// CollectBrandContexts extracts every context window for one brand across the
// whole corpus.
func CollectBrandContexts(corpus []entities.Thread, brand string, window int) []string {
	var contexts []string
	for i := range corpus {
		contexts = append(contexts, ExtractContexts(ThreadDocuments(&corpus[i]), brand, window)...)
	}
	return contexts
}
