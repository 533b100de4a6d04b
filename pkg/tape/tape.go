package tape

import (
	"fmt"
	"strings"

	"github.com/aretw0/tmsim/pkg/domain"
)

// DefaultMargin is the number of blank cells reserved left of the input.
const DefaultMargin = 10

// Tape is a head-addressed symbol buffer. It is not safe for concurrent use.
type Tape struct {
	cells  []domain.Symbol
	blank  domain.Symbol
	margin int // size of the most recent left allocation
	left   int // buffer index of the leftmost used cell
	origin int // buffer index of cell 0 of the input
	head   int // buffer index of the head
}

// Option defines a functional option for configuring a Tape.
type Option func(*Tape)

// WithBlank sets the symbol used for cells that were never written.
func WithBlank(sym domain.Symbol) Option {
	return func(t *Tape) {
		t.blank = sym
	}
}

// WithMargin sets the initial left margin. Values below 1 are ignored.
func WithMargin(n int) Option {
	return func(t *Tape) {
		if n > 0 {
			t.margin = n
		}
	}
}

// New creates a tape holding input with the head on its first cell.
// An empty input yields a single blank cell.
func New(input string, opts ...Option) *Tape {
	t := &Tape{
		blank:  domain.DefaultBlank,
		margin: DefaultMargin,
	}
	for _, opt := range opts {
		opt(t)
	}

	symbols := []rune(input)
	if len(symbols) == 0 {
		symbols = []rune{rune(t.blank)}
	}

	t.cells = make([]domain.Symbol, t.margin, t.margin+len(symbols))
	t.fill(t.cells)
	for _, r := range symbols {
		t.cells = append(t.cells, domain.Symbol(r))
	}

	t.left = t.margin
	t.origin = t.margin
	t.head = t.margin
	return t
}

// Current returns the symbol under the head.
func (t *Tape) Current() domain.Symbol {
	return t.cells[t.head]
}

// Replace overwrites the cell under the head.
func (t *Tape) Replace(sym domain.Symbol) {
	t.cells[t.head] = sym
}

// Move shifts the head one cell. Directions other than left and right are
// rejected and leave the head in place.
func (t *Tape) Move(dir domain.Direction) error {
	switch dir {
	case domain.DirectionLeft:
		t.moveLeft()
	case domain.DirectionRight:
		t.moveRight()
	default:
		return fmt.Errorf("%w: %q", domain.ErrInvalidDirection, string(dir))
	}
	return nil
}

func (t *Tape) moveLeft() {
	if t.head != t.left {
		t.head--
		return
	}
	if t.head == 0 {
		t.growLeft()
	}
	t.head--
	t.left--
	t.cells[t.head] = t.blank
}

// growLeft prepends a margin twice as large as the previous one and
// re-points every index into the buffer.
func (t *Tape) growLeft() {
	t.margin *= 2

	grown := make([]domain.Symbol, t.margin+len(t.cells), t.margin+cap(t.cells))
	t.fill(grown[:t.margin])
	copy(grown[t.margin:], t.cells)

	t.cells = grown
	t.left += t.margin
	t.origin += t.margin
	t.head += t.margin
}

func (t *Tape) moveRight() {
	if t.head == len(t.cells)-1 {
		t.cells = append(t.cells, t.blank)
	}
	t.head++
}

func (t *Tape) fill(cells []domain.Symbol) {
	for i := range cells {
		cells[i] = t.blank
	}
}

// Pointer returns the logical head position relative to cell 0 of the input.
func (t *Tape) Pointer() int {
	return t.head - t.origin
}

// Caret returns the head position inside String.
func (t *Tape) Caret() int {
	return t.head - t.left
}

// Cells returns a copy of the logical tape content.
func (t *Tape) Cells() []domain.Symbol {
	out := make([]domain.Symbol, len(t.cells)-t.left)
	copy(out, t.cells[t.left:])
	return out
}

// String renders the logical tape content.
func (t *Tape) String() string {
	var sb strings.Builder
	sb.Grow(len(t.cells) - t.left)
	for _, sym := range t.cells[t.left:] {
		sb.WriteRune(rune(sym))
	}
	return sb.String()
}

// Trimmed renders the tape without leading and trailing blanks.
func (t *Tape) Trimmed() string {
	return strings.Trim(t.String(), string(t.blank))
}

// Len returns the number of logical cells.
func (t *Tape) Len() int {
	return len(t.cells) - t.left
}

// Margin returns the size of the current left allocation.
func (t *Tape) Margin() int {
	return t.margin
}

// Blank returns the blank symbol of this tape.
func (t *Tape) Blank() domain.Symbol {
	return t.blank
}
