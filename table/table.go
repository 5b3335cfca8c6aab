// Package table renders fixed-width text tables for the federation exports.
//
// Every rendered line has the same width: cells are padded to their column width
// and values longer than the column are clipped to the leftmost Width runes.
// The package does not pick an encoding or a line terminator.
package table

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidColumn = errors.New("invalid table column")

type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// Column describes one fixed-width field. CollapseBorder removes the separator
// between this column and the one to its left.
type Column[K comparable] struct {
	ID             K
	Header         string
	Width          int
	Align          Align
	CollapseBorder bool
}

// Row supplies the cell values of one line.
type Row[K comparable] interface {
	Cell(id K) string
}

// MapRow is a Row backed by an identifier to value map.
type MapRow[K comparable] map[K]string

func (r MapRow[K]) Cell(id K) string {
	return r[id]
}

type Table[K comparable] struct {
	columns []Column[K]
	rows    []Row[K]
}

func New[K comparable](columns ...Column[K]) (*Table[K], error) {
	seen := make(map[K]bool, len(columns))
	for i, c := range columns {
		if c.Width < 1 {
			return nil, fmt.Errorf("%w: column %d (%v) has width %d", ErrInvalidColumn, i, c.ID, c.Width)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate column %v", ErrInvalidColumn, c.ID)
		}
		switch c.Align {
		case AlignLeft, AlignRight, AlignCenter:
		default:
			return nil, fmt.Errorf("%w: column %v has alignment %d", ErrInvalidColumn, c.ID, c.Align)
		}
		seen[c.ID] = true
	}
	return &Table[K]{columns: columns}, nil
}

func (t *Table[K]) AddRow(row Row[K]) {
	t.rows = append(t.rows, row)
}

// Width is the length in runes of every rendered line.
func (t *Table[K]) Width() int {
	width := 0
	for i, c := range t.columns {
		if i > 0 && !c.CollapseBorder {
			width++
		}
		width += c.Width
	}
	return width
}

func (t *Table[K]) RenderHeader() string {
	var sb strings.Builder
	for i, c := range t.columns {
		writeSeparator(&sb, i, c)
		sb.WriteString(Pad(c.Header, c.Width, c.Align))
	}
	return sb.String()
}

func (t *Table[K]) RenderRow(row Row[K]) string {
	var sb strings.Builder
	for i, c := range t.columns {
		writeSeparator(&sb, i, c)
		sb.WriteString(Pad(row.Cell(c.ID), c.Width, c.Align))
	}
	return sb.String()
}

func (t *Table[K]) RenderBody() []string {
	lines := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		lines = append(lines, t.RenderRow(row))
	}
	return lines
}

// Render joins header and body, ending every line with terminator.
func (t *Table[K]) Render(terminator string) string {
	var sb strings.Builder
	sb.WriteString(t.RenderHeader())
	sb.WriteString(terminator)
	for _, line := range t.RenderBody() {
		sb.WriteString(line)
		sb.WriteString(terminator)
	}
	return sb.String()
}

func writeSeparator[K comparable](sb *strings.Builder, i int, c Column[K]) {
	if i > 0 && !c.CollapseBorder {
		sb.WriteByte(' ')
	}
}

// Pad fits value into width runes. Center alignment puts the smaller half of
// the padding on the left.
func Pad(value string, width int, align Align) string {
	value = Clip(value, width)
	missing := width - utf8.RuneCountInString(value)
	if missing <= 0 {
		return value
	}
	switch align {
	case AlignRight:
		return strings.Repeat(" ", missing) + value
	case AlignCenter:
		left := missing / 2
		return strings.Repeat(" ", left) + value + strings.Repeat(" ", missing-left)
	default:
		return value + strings.Repeat(" ", missing)
	}
}

// Clip keeps the leftmost width runes of value.
func Clip(value string, width int) string {
	if utf8.RuneCountInString(value) <= width {
		return value
	}
	runes := []rune(value)
	return string(runes[:width])
}
