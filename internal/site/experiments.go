package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/PuerkitoBio/goquery"

	"github.com/inkpress/inkpress/internal/lrc"
)

// ExperimentManifest is an experiment's manifest.json.
type ExperimentManifest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Assets      []string `json:"assets"`
	Styles      []string `json:"styles"`
	Scripts     []string `json:"scripts"`
	Prepack     string   `json:"prepack,omitempty"` // Timing file converted into index.html before extraction.
}

// Experiment is a loaded experiment directory.
type Experiment struct {
	Dir      string // Directory name under the experiments dir.
	Meta     ExperimentManifest
	Markup   string // Outer HTML of the experiment's <main> element.
	NotesRaw []byte // README.md markdown, if any.
	Lines    int    // Lyric lines injected by the prepack step.
}

// ExperimentLink is the data templates see for an experiment reference.
type ExperimentLink struct {
	Title       string
	Slug        string
	Description string
}

// Link returns the template view of e.
func (e *Experiment) Link() ExperimentLink {
	return ExperimentLink{Title: e.Meta.Title, Slug: e.Meta.Slug, Description: e.Meta.Description}
}

// loadExperiment reads one experiment directory, running its prepack step
// first when the manifest names one.
func loadExperiment(baseDir, name, containerID string) (*Experiment, error) {
	dir := filepath.Join(baseDir, name)

	data, err := os.ReadFile(filepath.Join(dir, "manifest.json"))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	exp := &Experiment{Dir: name}
	if err := json.Unmarshal(data, &exp.Meta); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if exp.Meta.Slug == "" {
		exp.Meta.Slug = name
	}
	if exp.Meta.Title == "" {
		exp.Meta.Title = name
	}

	indexPath := filepath.Join(dir, "index.html")

	if exp.Meta.Prepack != "" {
		n, err := lrc.Convert(filepath.Join(dir, exp.Meta.Prepack), indexPath, containerID)
		if err != nil {
			return nil, fmt.Errorf("prepack %s: %w", exp.Meta.Prepack, err)
		}
		exp.Lines = n
	}

	f, err := os.Open(indexPath)
	if err != nil {
		return nil, fmt.Errorf("reading index: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(f)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", indexPath, err)
	}

	mainSel := doc.Find("main").First()
	if mainSel.Length() == 0 {
		return nil, fmt.Errorf("%s has no <main> element", indexPath)
	}
	exp.Markup, err = goquery.OuterHtml(mainSel)
	if err != nil {
		return nil, fmt.Errorf("rendering <main>: %w", err)
	}

	notes, err := os.ReadFile(filepath.Join(dir, "README.md"))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading notes: %w", err)
	}
	exp.NotesRaw = notes

	return exp, nil
}

// loadExperiments loads every subdirectory of dir, ordered by slug. A missing
// directory yields no experiments.
func loadExperiments(dir, containerID string) ([]*Experiment, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading experiments dir: %w", err)
	}

	var experiments []*Experiment
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		exp, err := loadExperiment(dir, entry.Name(), containerID)
		if err != nil {
			return nil, fmt.Errorf("experiment %s: %w", entry.Name(), err)
		}
		experiments = append(experiments, exp)
	}

	sort.Slice(experiments, func(i, j int) bool {
		return experiments[i].Meta.Slug < experiments[j].Meta.Slug
	})
	return experiments, nil
}
