// Package score computes the final grade of a session against its answer
// key. Scoring is an exact-set comparison: selecting a subset or superset
// of the correct labels for a multi-select question counts as wrong.
package score

import (
	"github.com/FINAL094/CDMP-exam-practice/internal/model"
	"github.com/FINAL094/CDMP-exam-practice/internal/session"
)

// QuestionScore is per-question correctness for one session question.
type QuestionScore struct {
	Number   string `json:"number"`
	Answered bool   `json:"answered"`
	Correct  bool   `json:"correct"`
}

// Report is the derived grade of a session. It is recomputed on demand and
// never cached inside the session.
type Report struct {
	PerQuestion  []QuestionScore `json:"per_question"`
	CorrectCount int             `json:"correct_count"`
	Total        int             `json:"total"`
	Percentage   float64         `json:"percentage"`
}

// Grade scores every question in the session. Unanswered questions count
// as incorrect, so grading a partial session is well defined.
func Grade(s *session.Session) Report {
	questions := s.Questions()
	report := Report{
		PerQuestion: make([]QuestionScore, 0, len(questions)),
		Total:       len(questions),
	}

	for _, q := range questions {
		selected := s.Selection(q.Number)
		qs := QuestionScore{
			Number:   q.Number,
			Answered: len(selected) > 0,
			Correct:  model.SameLabels(selected, q.Correct),
		}
		if qs.Correct {
			report.CorrectCount++
		}
		report.PerQuestion = append(report.PerQuestion, qs)
	}

	if report.Total > 0 {
		report.Percentage = 100 * float64(report.CorrectCount) / float64(report.Total)
	}
	return report
}
