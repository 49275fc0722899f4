// Package highlighter colors vim buffers with tree-sitter.
package highlighter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/bethropolis/termreel/internal/highlighter/lang"
	"github.com/bethropolis/termreel/internal/logger"
	"github.com/bethropolis/termreel/internal/types"
)

// HighlightResult maps a line number to the styled ranges on that line.
type HighlightResult map[int][]types.StyledRange

// Highlighter parses buffers and runs highlight queries. Queries are compiled
// once per language.
type Highlighter struct {
	mu      sync.Mutex
	parser  *sitter.Parser
	queries map[*lang.Language]*sitter.Query
}

// NewHighlighter creates a highlighter with the built-in languages registered.
func NewHighlighter() *Highlighter {
	RegisterLanguages()
	return &Highlighter{
		parser:  sitter.NewParser(),
		queries: make(map[*lang.Language]*sitter.Query),
	}
}

// Supports reports whether filename has a registered language.
func (h *Highlighter) Supports(filename string) bool {
	return lang.GetForFile(filename) != nil
}

func (h *Highlighter) query(l *lang.Language) (*sitter.Query, error) {
	if q, ok := h.queries[l]; ok {
		return q, nil
	}
	src, err := l.GetQuery()
	if err != nil {
		return nil, err
	}
	q, err := sitter.NewQuery(src, l.TreeSitterLang)
	if err != nil {
		return nil, fmt.Errorf("query parse failed for %s: %w", l.Name, err)
	}
	h.queries[l] = q
	return q, nil
}

// Highlight parses lines as the language of filename. An unknown language
// yields an empty result and no error.
func (h *Highlighter) Highlight(ctx context.Context, filename string, lines []string) (HighlightResult, error) {
	l := lang.GetForFile(filename)
	if l == nil {
		return HighlightResult{}, nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	query, err := h.query(l)
	if err != nil {
		return nil, err
	}
	h.parser.SetLanguage(l.TreeSitterLang)

	source := []byte(strings.Join(lines, "\n"))
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	defer tree.Close()

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(query, tree.RootNode())

	highlights := make(HighlightResult)
	seen := make(map[[3]int]bool)
	for {
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			styleName := captureNameToStyleName(query.CaptureNameForId(capture.Index))
			start, end := capture.Node.StartPoint(), capture.Node.EndPoint()
			for row := int(start.Row); row <= int(end.Row) && row < len(lines); row++ {
				line := []byte(lines[row])
				from, to := 0, utf8.RuneCount(line)
				if row == int(start.Row) {
					from = byteOffsetToRuneIndex(line, int(start.Column))
				}
				if row == int(end.Row) {
					to = byteOffsetToRuneIndex(line, int(end.Column))
				}
				key := [3]int{row, from, to}
				if to <= from || seen[key] {
					continue
				}
				seen[key] = true
				highlights[row] = append(highlights[row], types.StyledRange{
					StartCol:  from,
					EndCol:    to,
					StyleName: styleName,
				})
			}
		}
	}

	logger.DebugTagf("highlight", "%s: highlights on %d lines", filename, len(highlights))
	return highlights, nil
}

// StyleAt returns the style name covering col, the innermost range winning.
func (r HighlightResult) StyleAt(line, col int) (string, bool) {
	name, found, width := "", false, 0
	for _, sr := range r[line] {
		if col < sr.StartCol || col >= sr.EndCol {
			continue
		}
		if w := sr.EndCol - sr.StartCol; !found || w <= width {
			name, found, width = sr.StyleName, true, w
		}
	}
	return name, found
}

func captureNameToStyleName(captureName string) string {
	return strings.TrimPrefix(captureName, "@")
}

func byteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	return utf8.RuneCount(line[:byteOffset])
}
