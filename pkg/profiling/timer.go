package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Span is one timed operation. A nil *Span is valid and does nothing, so
// callers never check whether profiling is on.
type Span struct {
	name     string
	start    time.Time
	duration time.Duration

	mu       sync.Mutex
	children []*Span
}

// Start begins a child span. Children may be started from several
// goroutines at once.
func (s *Span) Start(name string) *Span {
	if s == nil {
		return nil
	}
	child := &Span{name: name, start: time.Now()}
	s.mu.Lock()
	s.children = append(s.children, child)
	s.mu.Unlock()
	return child
}

// Stop completes the timing for this span.
func (s *Span) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.duration = time.Since(s.start)
	s.mu.Unlock()
}

// Profiler manages a profiling session with nested timing spans.
type Profiler struct {
	root *Span
}

// New returns a profiler; a disabled profiler hands out nil spans.
func New(enabled bool) *Profiler {
	if !enabled {
		return &Profiler{}
	}
	return &Profiler{root: &Span{name: "root", start: time.Now()}}
}

// Enabled reports whether spans are recorded.
func (p *Profiler) Enabled() bool {
	return p != nil && p.root != nil
}

// Start begins a top-level span.
func (p *Profiler) Start(name string) *Span {
	if !p.Enabled() {
		return nil
	}
	return p.root.Start(name)
}

// Summarize prints a formatted, hierarchical summary of all timed spans to the writer.
func (p *Profiler) Summarize(w io.Writer) {
	if !p.Enabled() {
		return
	}

	p.root.mu.Lock()
	if p.root.duration == 0 {
		p.root.duration = time.Since(p.root.start)
	}
	total := p.root.duration
	p.root.mu.Unlock()

	fmt.Fprintln(w, "--- Timing Profile ---")
	printSpan(w, p.root, 0, total)
	fmt.Fprintf(w, "total %v\n", total.Round(time.Microsecond*100))
	fmt.Fprintln(w, "--------------------")
}

// printSpan is a recursive helper to print the span tree.
func printSpan(w io.Writer, s *Span, depth int, totalDuration time.Duration) {
	s.mu.Lock()
	duration := s.duration
	children := append([]*Span(nil), s.children...)
	s.mu.Unlock()

	if depth > 0 {
		percentage := 0.0
		if totalDuration > 0 {
			percentage = (float64(duration) / float64(totalDuration)) * 100
		}
		indent := strings.Repeat("  ", depth-1)
		fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", indent, s.name, duration.Round(time.Microsecond*100), percentage)
	}

	// Sort children by start time to maintain call order
	sort.Slice(children, func(i, j int) bool {
		return children[i].start.Before(children[j].start)
	})

	for _, child := range children {
		printSpan(w, child, depth+1, totalDuration)
	}
}
