package site

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/inkpress/inkpress/internal/config"
	"github.com/inkpress/inkpress/internal/progress"
)

// Generator builds the static site described by a Config.
type Generator struct {
	cfg      *config.Config
	md       goldmark.Markdown
	Reporter progress.Reporter
	Log      io.Writer
}

// Stats summarizes one build.
type Stats struct {
	Posts       int
	Experiments int
	Assets      int
	LyricLines  int
	Skipped     []string // Assets that were not copied (Sass sources).
}

// NewGenerator creates a Generator for cfg.
func NewGenerator(cfg *config.Config) *Generator {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Generator{
		cfg:      cfg,
		md:       md,
		Reporter: progress.Discard{},
		Log:      io.Discard,
	}
}

// layoutSet holds the parsed page layouts.
type layoutSet struct {
	main, home, post, experiment *template.Template
}

// loadLayouts parses each layout from dir, falling back to the built-in one
// when dir has no file for it.
func loadLayouts(dir string) (*layoutSet, error) {
	load := func(name, fallback string) (*template.Template, error) {
		src := fallback
		data, err := os.ReadFile(filepath.Join(dir, name+".html"))
		if err == nil {
			src = string(data)
		} else if !os.IsNotExist(err) {
			return nil, err
		}
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s layout: %w", name, err)
		}
		return tmpl, nil
	}

	var ls layoutSet
	var err error
	if ls.main, err = load("main", mainLayout); err != nil {
		return nil, err
	}
	if ls.home, err = load("home", homeLayout); err != nil {
		return nil, err
	}
	if ls.post, err = load("post", postLayout); err != nil {
		return nil, err
	}
	if ls.experiment, err = load("experiment", experimentLayout); err != nil {
		return nil, err
	}
	return &ls, nil
}

// mainData is passed to the main layout.
type mainData struct {
	SiteTitle   string
	Title       string
	Description string
	Content     template.HTML
	ShowHome    bool
	Path        string
	Scripts     []string
	Styles      []string
}

type homeData struct {
	Posts       []PostLink
	Experiments []ExperimentLink
}

type postData struct {
	Title    string
	Date     string
	Slug     string
	Content  template.HTML
	Posts    []PostLink
	NextPost *PostLink
}

type experimentData struct {
	Title            string
	Slug             string
	Description      string
	ExperimentMarkup template.HTML
	Notes            template.HTML
	Experiments      []ExperimentLink
}

// buildSteps is the number of Reporter steps in one Build.
const buildSteps = 7

// Build renders the whole site into the output directory.
func (g *Generator) Build() (*Stats, error) {
	cfg := g.cfg
	outDir := cfg.Path(cfg.OutputDir)
	stats := &Stats{}

	g.Reporter.Start(buildSteps)
	defer g.Reporter.Finish()

	g.Reporter.Step("Loading posts")
	posts, err := loadPosts(cfg.Path(cfg.PostsDir), cfg.Drafts)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Content, err = g.renderMarkdown(p.Body); err != nil {
			return nil, fmt.Errorf("rendering %s: %w", p.Source, err)
		}
	}
	stats.Posts = len(posts)

	g.Reporter.Step("Loading experiments")
	experiments, err := loadExperiments(cfg.Path(cfg.ExperimentsDir), cfg.Lyrics.ContainerID)
	if err != nil {
		return nil, err
	}
	stats.Experiments = len(experiments)
	for _, e := range experiments {
		stats.LyricLines += e.Lines
	}

	layouts, err := loadLayouts(cfg.Path(cfg.LayoutsDir))
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, err
	}

	g.Reporter.Step("Writing home")
	if err := g.writeHome(layouts, outDir, posts, experiments); err != nil {
		return nil, err
	}

	g.Reporter.Step("Writing posts")
	if err := g.writePosts(layouts, outDir, posts); err != nil {
		return nil, err
	}

	g.Reporter.Step("Writing experiments")
	if err := g.writeExperiments(layouts, outDir, experiments); err != nil {
		return nil, err
	}

	g.Reporter.Step("Packing assets")
	staticDir := filepath.Join(outDir, "static")
	copied, skipped, err := packAssets(cfg.Path(cfg.AssetsDir), staticDir, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	stats.Assets = copied
	stats.Skipped = skipped
	for _, s := range skipped {
		fmt.Fprintf(g.Log, "Warning: skipping Sass source %s (not compiled)\n", s)
	}
	if err := writeStatic(staticDir); err != nil {
		return nil, err
	}

	g.Reporter.Step("Writing search index")
	entries, err := BuildSearchIndex(posts)
	if err != nil {
		return nil, fmt.Errorf("building search index: %w", err)
	}
	if err := WriteSearchIndex(entries, filepath.Join(outDir, "search-index.json")); err != nil {
		return nil, fmt.Errorf("writing search index: %w", err)
	}

	return stats, nil
}

func (g *Generator) renderMarkdown(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writePage executes the content layout, wraps it in the main layout and
// writes the result to outPath.
func (g *Generator) writePage(layouts *layoutSet, content *template.Template, data any, page mainData, outPath string) error {
	var body bytes.Buffer
	if err := content.Execute(&body, data); err != nil {
		return fmt.Errorf("executing %s layout: %w", content.Name(), err)
	}
	page.SiteTitle = g.cfg.Title
	page.Content = template.HTML(body.String())

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	if err := layouts.main.Execute(f, page); err != nil {
		f.Close()
		return fmt.Errorf("executing main layout for %s: %w", outPath, err)
	}
	return f.Close()
}

func (g *Generator) writeHome(layouts *layoutSet, outDir string, posts []*Post, experiments []*Experiment) error {
	data := homeData{}
	for _, p := range posts {
		data.Posts = append(data.Posts, p.Link())
	}
	for _, e := range experiments {
		data.Experiments = append(data.Experiments, e.Link())
	}
	page := mainData{Title: "Welcome"}
	if err := g.writePage(layouts, layouts.home, data, page, filepath.Join(outDir, "index.html")); err != nil {
		return fmt.Errorf("writing home: %w", err)
	}
	fmt.Fprintln(g.Log, "Written home")
	return nil
}

func (g *Generator) writePosts(layouts *layoutSet, outDir string, posts []*Post) error {
	for i, p := range posts {
		data := postData{
			Title:   p.Meta.Title,
			Date:    p.Link().Date,
			Slug:    p.Meta.Slug,
			Content: template.HTML(p.Content),
		}
		for _, r := range relatedPosts(posts, i, g.cfg.RelatedPosts) {
			data.Posts = append(data.Posts, r.Link())
		}
		if p.Meta.Next != "" {
			next, ok := findPost(posts, p.Meta.Next)
			if !ok {
				return fmt.Errorf("post %s: next post %q not found", p.Meta.Slug, p.Meta.Next)
			}
			link := next.Link()
			data.NextPost = &link
		}

		title := p.Meta.Title
		if p.Meta.TitleMeta != "" {
			title = p.Meta.TitleMeta
		}
		page := mainData{
			Title:       title,
			Description: p.Meta.Description,
			ShowHome:    true,
			Path:        "/posts/" + p.Meta.Slug + ".html",
		}

		outPath := filepath.Join(outDir, "posts", p.Meta.Slug+".html")
		if err := g.writePage(layouts, layouts.post, data, page, outPath); err != nil {
			return fmt.Errorf("writing post %s: %w", p.Meta.Slug, err)
		}
		fmt.Fprintf(g.Log, "Written %s\n", outPath)
	}
	return nil
}

func (g *Generator) writeExperiments(layouts *layoutSet, outDir string, experiments []*Experiment) error {
	links := make([]ExperimentLink, 0, len(experiments))
	for _, e := range experiments {
		links = append(links, e.Link())
	}

	for _, e := range experiments {
		notes := ""
		if len(e.NotesRaw) > 0 {
			var err error
			if notes, err = g.renderMarkdown(e.NotesRaw); err != nil {
				return fmt.Errorf("rendering notes for %s: %w", e.Meta.Slug, err)
			}
		}

		data := experimentData{
			Title:            e.Meta.Title,
			Slug:             e.Meta.Slug,
			Description:      e.Meta.Description,
			ExperimentMarkup: template.HTML(e.Markup),
			Notes:            template.HTML(notes),
			Experiments:      links,
		}
		page := mainData{
			Title:       e.Meta.Title,
			Description: e.Meta.Description,
			ShowHome:    true,
			Path:        "/experiments/" + e.Meta.Slug,
			Scripts:     e.Meta.Scripts,
			Styles:      e.Meta.Styles,
		}

		outPath := filepath.Join(outDir, "experiments", e.Meta.Slug, "index.html")
		if err := g.writePage(layouts, layouts.experiment, data, page, outPath); err != nil {
			return fmt.Errorf("writing experiment %s: %w", e.Meta.Slug, err)
		}

		srcDir := filepath.Join(g.cfg.Path(g.cfg.ExperimentsDir), e.Dir)
		for _, asset := range e.Meta.Assets {
			dst := filepath.Join(outDir, "experiments", e.Dir, filepath.FromSlash(asset))
			if err := copyFile(filepath.Join(srcDir, filepath.FromSlash(asset)), dst); err != nil {
				return fmt.Errorf("copying asset %s for %s: %w", asset, e.Meta.Slug, err)
			}
		}
		fmt.Fprintf(g.Log, "Written %s\n", outPath)
	}
	return nil
}

// writeStatic writes the built-in stylesheet and client script.
func writeStatic(staticDir string) error {
	if err := os.MkdirAll(staticDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(staticDir, "inkpress.css"), []byte(cssContent), 0o644); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(staticDir, "inkpress.js"), []byte(clientScript), 0o644)
}
