package data

import (
	"strings"
	"time"
)

// Chapter is the typed view of one entry of the document's chapters array.
// Pointer fields are nil when the key is absent, null or holds a non-string
// value that counts as empty.
type Chapter struct {
	ID      RawValue
	Title   *string
	LogoURL *string
}

// RawValue keeps an opaque JSON value exactly as it appeared in the document.
type RawValue []byte

// UnmarshalJSON stores a copy of the raw bytes.
func (r *RawValue) UnmarshalJSON(b []byte) error {
	*r = append((*r)[:0], b...)
	return nil
}

// TitleText returns the title, or "" when absent.
func (c Chapter) TitleText() string {
	if c.Title == nil {
		return ""
	}
	return *c.Title
}

// LogoURLText returns the logo URL, or "" when absent.
func (c Chapter) LogoURLText() string {
	if c.LogoURL == nil {
		return ""
	}
	return *c.LogoURL
}

// DisplayID renders the chapter id for humans: strings without quotes, other
// values as written, "-" when absent.
func (c Chapter) DisplayID() string {
	id := strings.TrimSpace(string(c.ID))
	if id == "" || id == "null" {
		return "-"
	}
	if len(id) >= 2 && id[0] == '"' && id[len(id)-1] == '"' {
		var s string
		if err := json.Unmarshal([]byte(id), &s); err == nil {
			return s
		}
	}
	return id
}

// Outcome classifies what happened to a chapter's logo.
type Outcome string

const (
	OutcomeUpdated Outcome = "updated"
	OutcomeMissing Outcome = "missing"
	OutcomeSkipped Outcome = "skipped"
)

// Result describes the handling of a single chapter.
type Result struct {
	Index            int
	ChapterID        string
	Title            string
	Outcome          Outcome
	ExpectedFilename string
	LocalPath        string
	OriginalURL      string
	AlreadyLocal     bool // logoUrl already pointed at LocalPath before the run
}

// Report aggregates the results of one pass over the document.
type Report struct {
	Available int // logos in the inventory
	Updated   int
	Missing   int
	Skipped   int
	Results   []Result
}

// Add records a result and bumps the matching counter.
func (r *Report) Add(res Result) {
	switch res.Outcome {
	case OutcomeUpdated:
		r.Updated++
	case OutcomeMissing:
		r.Missing++
	case OutcomeSkipped:
		r.Skipped++
	}
	r.Results = append(r.Results, res)
}

// Total is the number of chapters processed.
func (r Report) Total() int {
	return r.Updated + r.Missing + r.Skipped
}

// Filter returns the results with the given outcome, or all of them when
// outcome is empty.
func (r Report) Filter(outcome Outcome) []Result {
	if outcome == "" {
		return r.Results
	}
	var out []Result
	for _, res := range r.Results {
		if res.Outcome == outcome {
			out = append(out, res)
		}
	}
	return out
}

// Run is a report persisted to the ledger.
type Run struct {
	ID        string
	StartedAt time.Time
	Document  string
	LogosDir  string
	DryRun    bool
	Report    Report
}
