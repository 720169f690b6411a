package lrc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Line is a single timed lyric line.
type Line struct {
	TimeMillis int64  // Start time in milliseconds.
	Text       string // Literal lyric text.
}

// linePattern matches "[mm:ss.hh]text". It is unanchored, so a timestamp
// anywhere in the line is accepted.
var linePattern = regexp.MustCompile(`\[(\d{2}:\d{2}\.\d{2})\](.*)`)

// ParseTime converts a "mm:ss.hh" timestamp into milliseconds.
func ParseTime(ts string) (int64, error) {
	minStr, secStr, ok := strings.Cut(ts, ":")
	if !ok {
		return 0, fmt.Errorf("lrc: timestamp %q: missing ':'", ts)
	}
	minutes, err := strconv.ParseFloat(minStr, 64)
	if err != nil {
		return 0, fmt.Errorf("lrc: timestamp %q: minutes: %w", ts, err)
	}
	seconds, err := strconv.ParseFloat(secStr, 64)
	if err != nil {
		return 0, fmt.Errorf("lrc: timestamp %q: seconds: %w", ts, err)
	}
	return int64(math.Round(minutes*60000 + seconds*1000)), nil
}

// Parse reads a timing file and returns its lyric lines in source order.
// Lines that do not carry a timestamp are dropped.
func Parse(r io.Reader) ([]Line, error) {
	var lines []Line

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		raw := strings.TrimSuffix(scanner.Text(), "\r")

		m := linePattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}

		ms, err := ParseTime(m[1])
		if err != nil {
			// The pattern only admits digits, so this is unreachable in practice.
			continue
		}
		lines = append(lines, Line{TimeMillis: ms, Text: m[2]})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lrc: reading timing file: %w", err)
	}
	return lines, nil
}
