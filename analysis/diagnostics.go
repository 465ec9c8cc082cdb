package analysis

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Extraction context names used as ParseOutcome keys.
const (
	ContextChatMessages = "chat messages"
	ContextFeedbackData = "feedback data"
)

// Named parse-error counters.
const (
	CounterChatMessages = "chats/messages"
	CounterFeedbackData = "feedback/data"
)

// ParseOutcome tallies successful vs. failed record extractions for one
// extraction context.
type ParseOutcome struct {
	Success int `json:"success"`
	Failure int `json:"failure"`
}

// Total returns the number of extraction attempts.
func (p ParseOutcome) Total() int {
	return p.Success + p.Failure
}

// SuccessRate returns the percentage of successful extractions in [0,100],
// 0 when nothing was attempted.
func (p ParseOutcome) SuccessRate() float64 {
	total := p.Total()
	if total == 0 {
		return 0
	}
	return float64(p.Success) / float64(total) * 100
}

// Diagnostics accumulates data-quality signals for one run: parse outcomes
// per extraction context, named parse-error counters, and a tally of
// unrecognized rating literals.
//
// It is owned by the run context and passed explicitly through the extractor
// and classifier; it is never a package-level singleton. A fresh Diagnostics
// is created per run, so all counters start at zero.
type Diagnostics struct {
	RunID string

	outcomes       map[string]*ParseOutcome
	parseErrors    map[string]int
	unknownRatings map[string]int
}

// NewDiagnostics creates an empty accumulator with a fresh run id.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		RunID:          uuid.NewString(),
		outcomes:       make(map[string]*ParseOutcome),
		parseErrors:    make(map[string]int),
		unknownRatings: make(map[string]int),
	}
}

// RecordSuccess attributes one successful extraction to context.
func (d *Diagnostics) RecordSuccess(context string) {
	if d == nil {
		return
	}
	d.outcome(context).Success++
}

// RecordFailure attributes one failed extraction to context and increments
// the named parse-error counter.
func (d *Diagnostics) RecordFailure(context, counter string) {
	if d == nil {
		return
	}
	d.outcome(context).Failure++
	d.parseErrors[counter]++
}

// RecordUnknownRating tallies an unrecognized rating literal by "type:literal".
func (d *Diagnostics) RecordUnknownRating(typeTag, literal string) {
	if d == nil {
		return
	}
	d.unknownRatings[fmt.Sprintf("%s:%s", typeTag, literal)]++
}

// Outcome returns the parse outcome for context (zero value when unseen).
func (d *Diagnostics) Outcome(context string) ParseOutcome {
	if d == nil {
		return ParseOutcome{}
	}
	if p, ok := d.outcomes[context]; ok {
		return *p
	}
	return ParseOutcome{}
}

// Contexts returns the extraction contexts seen so far, sorted.
func (d *Diagnostics) Contexts() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.outcomes))
	for k := range d.outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseErrors returns a copy of the named parse-error counters.
func (d *Diagnostics) ParseErrors() map[string]int {
	if d == nil {
		return nil
	}
	out := make(map[string]int, len(d.parseErrors))
	for k, v := range d.parseErrors {
		out[k] = v
	}
	return out
}

// UnknownRatings returns a copy of the unrecognized-rating tally.
func (d *Diagnostics) UnknownRatings() map[string]int {
	if d == nil {
		return nil
	}
	out := make(map[string]int, len(d.unknownRatings))
	for k, v := range d.unknownRatings {
		out[k] = v
	}
	return out
}

// HasParseErrors reports whether any extraction failed this run.
func (d *Diagnostics) HasParseErrors() bool {
	return d != nil && len(d.parseErrors) > 0
}

func (d *Diagnostics) outcome(context string) *ParseOutcome {
	p, ok := d.outcomes[context]
	if !ok {
		p = &ParseOutcome{}
		d.outcomes[context] = p
	}
	return p
}
