package runner

import (
	"fmt"
	"io"

	"github.com/vaibhaw-/AuditNorm/internal/auditnorm/normalize"
)

// Stats tracks what a normalization run produced.
type Stats struct {
	Events     int            // events normalized
	Records    int            // records normalized
	ByCategory map[string]int // records per category
}

// NewStats creates a Stats with every category present at zero.
func NewStats() *Stats {
	s := &Stats{ByCategory: make(map[string]int)}
	for _, c := range normalize.Categories() {
		s.ByCategory[c.String()] = 0
	}
	return s
}

// Observe counts one emitted line.
func (s *Stats) Observe(l normalize.Line) {
	s.Records++
	s.ByCategory[l.Category.String()]++
	if l.RecordOrdinal == 1 {
		s.Events++
	}
}

// PrintSummary writes a human readable summary, in category order.
func (s *Stats) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "Events: %d\n", s.Events)
	fmt.Fprintf(w, "Records: %d\n", s.Records)
	fmt.Fprintln(w, "By category:")
	for _, c := range normalize.Categories() {
		fmt.Fprintf(w, "  %s: %d\n", c, s.ByCategory[c.String()])
	}
}
