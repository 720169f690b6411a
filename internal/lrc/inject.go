package lrc

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultContainerID is the id of the element that receives the lyric list.
const DefaultContainerID = "lyrics"

// ErrNoContainer is returned when the target document has no insertion point.
var ErrNoContainer = errors.New("lrc: insertion point not found")

// RenderList renders lines as a single list, one item per line, each tagged
// with its start time in a data-time attribute.
func RenderList(lines []Line) string {
	var b strings.Builder
	b.WriteString("\n<ul>")
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(`<li data-time="`)
		b.WriteString(strconv.FormatInt(l.TimeMillis, 10))
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(l.Text))
		b.WriteString("</li>")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

// Inject replaces the contents of the element with the given id with the
// rendered list.
func Inject(doc *goquery.Document, lines []Line, containerID string) error {
	sel := doc.Find("#" + containerID)
	if sel.Length() == 0 {
		return fmt.Errorf("%w: #%s", ErrNoContainer, containerID)
	}
	sel.First().SetHtml(RenderList(lines))
	return nil
}

// Convert parses the timing file at lrcPath and rewrites the document at
// htmlPath in place with the generated list. It returns the number of lines
// written. Nothing is written if either input is missing or the document has
// no insertion point.
func Convert(lrcPath, htmlPath, containerID string) (int, error) {
	if containerID == "" {
		containerID = DefaultContainerID
	}

	lrcFile, err := os.Open(lrcPath)
	if err != nil {
		return 0, fmt.Errorf("opening timing file: %w", err)
	}
	defer lrcFile.Close()

	lines, err := Parse(lrcFile)
	if err != nil {
		return 0, err
	}

	htmlFile, err := os.Open(htmlPath)
	if err != nil {
		return 0, fmt.Errorf("opening document: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(htmlFile)
	htmlFile.Close()
	if err != nil {
		return 0, fmt.Errorf("parsing document %s: %w", htmlPath, err)
	}

	if err := Inject(doc, lines, containerID); err != nil {
		return 0, fmt.Errorf("%s: %w", htmlPath, err)
	}

	out, err := doc.Html()
	if err != nil {
		return 0, fmt.Errorf("rendering document: %w", err)
	}

	if err := writeFileAtomic(htmlPath, []byte(out)); err != nil {
		return 0, err
	}
	return len(lines), nil
}

// writeFileAtomic writes data next to path and renames it over path, so a
// failed write never leaves a truncated document behind.
func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
