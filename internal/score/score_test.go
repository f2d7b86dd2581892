package score

import (
	"testing"
	"time"

	"github.com/FINAL094/CDMP-exam-practice/internal/model"
	"github.com/FINAL094/CDMP-exam-practice/internal/session"
)

func singleQuestion(t *testing.T) []model.Question {
	t.Helper()
	return []model.Question{{
		Number:  "Q1",
		Chapter: "Data Governance",
		Text:    "What is data stewardship?",
		Options: []model.Option{
			{Label: "A", Text: "x"},
			{Label: "B", Text: "y"},
			{Label: "C", Text: "z"},
			{Label: "D", Text: "w"},
		},
		Correct: []string{"B"},
	}}
}

func multiQuestion(t *testing.T) []model.Question {
	t.Helper()
	return []model.Question{{
		Number: "Q1",
		Text:   "Pick two",
		Options: []model.Option{
			{Label: "A", Text: "a"},
			{Label: "B", Text: "b"},
			{Label: "C", Text: "c"},
			{Label: "D", Text: "d"},
		},
		Correct: []string{"A", "C"},
	}}
}

func TestGradeCorrectAnswer(t *testing.T) {
	s := session.New(singleQuestion(t), session.Options{})
	s.Select("Q1", []string{"B"})
	s.Finish()

	report := Grade(s)
	if report.CorrectCount != 1 || report.Total != 1 {
		t.Errorf("got %d/%d, want 1/1", report.CorrectCount, report.Total)
	}
	if report.Percentage != 100 {
		t.Errorf("percentage = %v, want 100", report.Percentage)
	}
	if !report.PerQuestion[0].Answered || !report.PerQuestion[0].Correct {
		t.Errorf("unexpected per-question result %+v", report.PerQuestion[0])
	}
}

func TestGradeWrongAnswer(t *testing.T) {
	s := session.New(singleQuestion(t), session.Options{})
	s.Select("Q1", []string{"A"})
	s.Finish()

	report := Grade(s)
	if report.CorrectCount != 0 {
		t.Errorf("correct count = %d, want 0", report.CorrectCount)
	}
	if report.Percentage != 0 {
		t.Errorf("percentage = %v, want 0", report.Percentage)
	}
}

func TestGradeExactSetRule(t *testing.T) {
	tests := []struct {
		name      string
		questions []model.Question
		selected  []string
		want      bool
	}{
		{"superset is wrong", singleQuestion(t), []string{"A", "B"}, false},
		{"subset is wrong", multiQuestion(t), []string{"A"}, false},
		{"superset of multi is wrong", multiQuestion(t), []string{"A", "B", "C"}, false},
		{"exact multi is right", multiQuestion(t), []string{"A", "C"}, true},
		{"order does not matter", multiQuestion(t), []string{"C", "A"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := session.New(tt.questions, session.Options{})
			s.Select("Q1", tt.selected)
			s.Finish()

			report := Grade(s)
			if got := report.PerQuestion[0].Correct; got != tt.want {
				t.Errorf("correct = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGradeUnansweredCountsAsIncorrect(t *testing.T) {
	s := session.New(singleQuestion(t), session.Options{})
	s.Finish()

	report := Grade(s)
	if report.CorrectCount != 0 || report.Total != 1 {
		t.Errorf("got %d/%d, want 0/1", report.CorrectCount, report.Total)
	}
	if report.PerQuestion[0].Answered {
		t.Error("unanswered question reported as answered")
	}
}

func TestGradeEmptySession(t *testing.T) {
	s := session.New(nil, session.Options{})
	report := Grade(s)
	if report.Total != 0 || report.Percentage != 0 {
		t.Errorf("empty session: total=%d percentage=%v, want 0/0", report.Total, report.Percentage)
	}
}

func TestGradeInProgressSession(t *testing.T) {
	questions := append(singleQuestion(t), model.Question{
		Number:  "Q2",
		Text:    "second",
		Options: []model.Option{{Label: "A", Text: "a"}, {Label: "B", Text: "b"}},
		Correct: []string{"A"},
	})
	s := session.New(questions, session.Options{})
	s.Select("Q1", []string{"B"})

	// Grading before finish must not fail; the open question is wrong.
	report := Grade(s)
	if report.CorrectCount != 1 || report.Total != 2 {
		t.Errorf("got %d/%d, want 1/2", report.CorrectCount, report.Total)
	}
	if report.Percentage != 50 {
		t.Errorf("percentage = %v, want 50", report.Percentage)
	}
}

func TestGradeExpiredSession(t *testing.T) {
	s := session.New(singleQuestion(t), session.Options{TimeLimit: time.Second})
	deadline, _ := s.Deadline()
	s.Tick(deadline.Add(time.Second))

	report := Grade(s)
	if report.CorrectCount != 0 || report.Total != 1 {
		t.Errorf("got %d/%d, want 0/1", report.CorrectCount, report.Total)
	}
}
