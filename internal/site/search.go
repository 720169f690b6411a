package site

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxSearchContent caps the text stored per entry.
const maxSearchContent = 2000

// SearchEntry represents a single searchable page of the site.
type SearchEntry struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Content string `json:"content"`
}

// BuildSearchIndex builds one entry per rendered post. Content is the post's
// visible text with whitespace collapsed.
func BuildSearchIndex(posts []*Post) ([]SearchEntry, error) {
	entries := make([]SearchEntry, 0, len(posts))
	for _, p := range posts {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.Content))
		if err != nil {
			return nil, err
		}
		text := strings.Join(strings.Fields(doc.Text()), " ")
		if len(text) > maxSearchContent {
			text = truncateUTF8(text, maxSearchContent)
		}

		entries = append(entries, SearchEntry{
			Path:    "posts/" + p.Meta.Slug + ".html",
			Title:   p.Meta.Title,
			Summary: p.Meta.Description,
			Content: text,
		})
	}
	return entries, nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	for n > 0 && n < len(s) && !isRuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func isRuneStart(b byte) bool { return b&0xC0 != 0x80 }

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
