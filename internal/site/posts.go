package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const frontMatterDelimiter = "---"

// dateLayout is the front matter date format (day-month-year).
const dateLayout = "02-01-2006"

// displayDateLayout is how dates are shown on pages.
const displayDateLayout = "02 January 2006"

// PostMeta is a post's front matter.
type PostMeta struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Date        string `yaml:"date"`
	Draft       bool   `yaml:"draft"`
	Next        string `yaml:"next"`
	Description string `yaml:"description"`
	TitleMeta   string `yaml:"title_meta"`
}

// Post is a parsed markdown post.
type Post struct {
	Meta    PostMeta
	Date    time.Time
	Body    []byte // Markdown without front matter.
	Content string // Rendered HTML.
	Source  string // Path of the markdown file.
}

// PostLink is the data templates see for a post reference.
type PostLink struct {
	Title       string
	Slug        string
	Date        string
	Description string
}

// Link returns the template view of p.
func (p *Post) Link() PostLink {
	link := PostLink{
		Title:       p.Meta.Title,
		Slug:        p.Meta.Slug,
		Description: p.Meta.Description,
	}
	if !p.Date.IsZero() {
		link.Date = p.Date.Format(displayDateLayout)
	}
	return link
}

// splitFrontMatter separates a leading "---" delimited block from the body.
// Content without front matter returns a nil block.
func splitFrontMatter(content []byte) (matter, body []byte) {
	normalized := bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	if !bytes.HasPrefix(normalized, []byte(frontMatterDelimiter+"\n")) {
		return nil, normalized
	}
	rest := normalized[len(frontMatterDelimiter)+1:]

	end := bytes.Index(rest, []byte("\n"+frontMatterDelimiter))
	if end == -1 {
		return nil, normalized
	}
	matter = rest[:end]
	body = rest[end+len(frontMatterDelimiter)+1:]
	body = bytes.TrimPrefix(body, []byte("\n"))
	return matter, body
}

// parsePost reads a markdown file and its front matter. The slug defaults to
// the file name and the title to the slug.
func parsePost(path string) (*Post, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	matter, body := splitFrontMatter(content)

	post := &Post{Body: body, Source: path}
	if matter != nil {
		if err := yaml.Unmarshal(matter, &post.Meta); err != nil {
			return nil, fmt.Errorf("front matter: %w", err)
		}
	}

	if post.Meta.Slug == "" {
		post.Meta.Slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if post.Meta.Title == "" {
		post.Meta.Title = post.Meta.Slug
	}
	if post.Meta.Date != "" {
		d, err := time.Parse(dateLayout, strings.TrimSpace(post.Meta.Date))
		if err != nil {
			return nil, fmt.Errorf("date %q: expected dd-mm-yyyy", post.Meta.Date)
		}
		post.Date = d
	}
	return post, nil
}

// loadPosts parses every .md file directly under dir, newest first. A missing
// directory yields no posts.
func loadPosts(dir string, includeDrafts bool) ([]*Post, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading posts dir: %w", err)
	}

	var posts []*Post
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		post, err := parsePost(path)
		if err != nil {
			return nil, fmt.Errorf("post %s: %w", path, err)
		}
		if post.Meta.Draft && !includeDrafts {
			continue
		}
		if other, dup := seen[post.Meta.Slug]; dup {
			return nil, fmt.Errorf("post %s: slug %q already used by %s", path, post.Meta.Slug, other)
		}
		seen[post.Meta.Slug] = path
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.After(posts[j].Date)
	})
	return posts, nil
}

// relatedPosts returns the window of posts shown next to posts[cursor]: up to
// half of limit before it, the post itself, then following posts until limit
// is reached.
func relatedPosts(posts []*Post, cursor, limit int) []*Post {
	before := limit / 2
	start := cursor - before
	if start < 0 {
		start = 0
	}

	results := make([]*Post, 0, limit)
	results = append(results, posts[start:cursor+1]...)

	for i := cursor + 1; len(results) < limit && i < len(posts); i++ {
		results = append(results, posts[i])
	}
	return results
}

// findPost returns the post with the given slug.
func findPost(posts []*Post, slug string) (*Post, bool) {
	for _, p := range posts {
		if p.Meta.Slug == slug {
			return p, true
		}
	}
	return nil, false
}
