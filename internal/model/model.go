package model

import (
	"sort"
	"strings"
)

// Option is a single answer choice. The label stays bound to its text no
// matter where the option is displayed, so reordering options never changes
// which answers are correct.
type Option struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Question is one normalized multiple-choice question, independent of which
// spreadsheet layout it was loaded from.
type Question struct {
	Number    string   `json:"number"`
	Chapter   string   `json:"chapter"`
	Text      string   `json:"text"`
	Options   []Option `json:"options"`
	Correct   []string `json:"correct"` // normalized labels, sorted
	Reference string   `json:"reference,omitempty"`
}

// IsMultiple reports whether more than one option must be selected.
func (q Question) IsMultiple() bool {
	return len(q.Correct) > 1
}

// OptionText returns the text for a label and whether the label exists.
func (q Question) OptionText(label string) (string, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, opt := range q.Options {
		if opt.Label == label {
			return opt.Text, true
		}
	}
	return "", false
}

// HasOption reports whether the question carries an option with this label.
func (q Question) HasOption(label string) bool {
	_, ok := q.OptionText(label)
	return ok
}

// NormalizeLabels uppercases, trims, dedupes and sorts a selection so that
// two selections of the same options always compare equal.
func NormalizeLabels(labels []string) []string {
	seen := make(map[string]bool, len(labels))
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.ToUpper(strings.TrimSpace(l))
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// SameLabels reports whether two normalized label sets are equal.
func SameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RunConfig holds runtime quiz parameters set via CLI flags.
type RunConfig struct {
	File               string // spreadsheet path
	Chapter            string // empty or "all" means every chapter
	ShuffleQuestions   bool
	ShuffleOptions     bool
	SecondsPerQuestion int // 0 means untimed
	Lang               string
}
