// Package review assembles the data needed to render review mode: what the
// user picked, what was correct, and where to read up. Building a review is
// a pure projection; the session is never mutated.
package review

import (
	"github.com/FINAL094/CDMP-exam-practice/internal/model"
	"github.com/FINAL094/CDMP-exam-practice/internal/session"
)

// Entry is one question's review line, in session display order.
type Entry struct {
	Number         string   `json:"number"`
	Chapter        string   `json:"chapter"`
	Text           string   `json:"text"`
	SelectedLabels []string `json:"selected_labels"`
	SelectedTexts  []string `json:"selected_texts"`
	CorrectLabels  []string `json:"correct_labels"`
	CorrectTexts   []string `json:"correct_texts"`
	Answered       bool     `json:"answered"`
	Correct        bool     `json:"correct"`
	Reference      string   `json:"reference,omitempty"`
}

// Build assembles review entries for every question in the session.
// Unanswered questions appear with empty selections and Answered false.
// Repeated calls with an unchanged session yield identical results.
func Build(s *session.Session) []Entry {
	questions := s.Questions()
	entries := make([]Entry, 0, len(questions))

	for _, q := range questions {
		selected := s.Selection(q.Number)
		entries = append(entries, Entry{
			Number:         q.Number,
			Chapter:        q.Chapter,
			Text:           q.Text,
			SelectedLabels: selected,
			SelectedTexts:  optionTexts(q, selected),
			CorrectLabels:  q.Correct,
			CorrectTexts:   optionTexts(q, q.Correct),
			Answered:       len(selected) > 0,
			Correct:        model.SameLabels(selected, q.Correct),
			Reference:      q.Reference,
		})
	}
	return entries
}

func optionTexts(q model.Question, labels []string) []string {
	texts := make([]string, 0, len(labels))
	for _, l := range labels {
		if text, ok := q.OptionText(l); ok {
			texts = append(texts, text)
		}
	}
	return texts
}
