// Package runner is the terminal front-end of the trainer. It renders the
// session state and translates keystrokes into session operations; all quiz
// logic lives in the session, score and review packages.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/FINAL094/CDMP-exam-practice/internal/i18n"
	"github.com/FINAL094/CDMP-exam-practice/internal/model"
	"github.com/FINAL094/CDMP-exam-practice/internal/review"
	"github.com/FINAL094/CDMP-exam-practice/internal/score"
	"github.com/FINAL094/CDMP-exam-practice/internal/session"
)

// Runner drives one interactive quiz over a reader/writer pair.
type Runner struct {
	in  *bufio.Reader
	out io.Writer
	tr  *i18n.Translator
	now func() time.Time
}

// New creates a runner. The clock defaults to time.Now.
func New(in io.Reader, out io.Writer, tr *i18n.Translator) *Runner {
	return &Runner{
		in:  bufio.NewReader(in),
		out: out,
		tr:  tr,
		now: time.Now,
	}
}

// Run filters the question bank by chapter, starts a session with the
// configured options and loops until the session reaches a terminal state,
// then prints the score report and the review.
func (r *Runner) Run(questions []model.Question, cfg model.RunConfig) error {
	fmt.Fprintln(r.out, r.tr.T("Greeting"))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.tr.T("AppTitle"))

	chapter := displayChapter(cfg.Chapter)
	selected := model.FilterByChapter(questions, cfg.Chapter)
	if len(selected) == 0 {
		fmt.Fprintln(r.out, r.tr.Td("NoQuestions", map[string]any{"Chapter": chapter}))
		for _, name := range model.ChapterNames() {
			fmt.Fprintf(r.out, "  %s\n", name)
		}
		return nil
	}
	fmt.Fprintln(r.out, r.tr.Td("ChapterInfo", map[string]any{
		"Chapter": chapter,
		"Count":   len(selected),
	}))

	sess := session.New(selected, session.Options{
		ShuffleQuestions: cfg.ShuffleQuestions,
		ShuffleOptions:   cfg.ShuffleOptions,
		TimeLimit:        time.Duration(cfg.SecondsPerQuestion) * time.Second * time.Duration(len(selected)),
	})

	for sess.Status() == session.StatusInProgress {
		if r.expire(sess) {
			break
		}

		q, ok := sess.Current()
		if !ok {
			sess.Finish()
			break
		}
		r.printQuestion(sess, q, chapter)

		line, err := r.in.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				sess.Finish()
				break
			}
			return fmt.Errorf("read input: %w", err)
		}
		// Time passed while the prompt was blocked on input.
		if r.expire(sess) {
			break
		}
		r.handleInput(sess, q, strings.TrimSpace(line))
	}

	r.printResults(sess, chapter)
	return nil
}

// expire polls the deadline and announces expiry once.
func (r *Runner) expire(sess *session.Session) bool {
	if sess.Tick(r.now()) {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, r.tr.T("TimeUp"))
		return true
	}
	return sess.Status() != session.StatusInProgress
}

func (r *Runner) printQuestion(sess *session.Session, q model.Question, chapter string) {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.tr.Td("QuestionHeader", map[string]any{
		"Chapter": chapter,
		"Number":  q.Number,
		"Index":   sess.CurrentIndex() + 1,
		"Total":   sess.Len(),
	}))
	if _, timed := sess.Deadline(); timed {
		fmt.Fprintln(r.out, r.tr.Td("TimeLeft", map[string]any{
			"Time": formatClock(sess.Remaining(r.now())),
		}))
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, q.Text)
	fmt.Fprintln(r.out)
	for _, opt := range q.Options {
		fmt.Fprintf(r.out, "%s. %s\n", opt.Label, opt.Text)
	}
	if picked := sess.Selection(q.Number); len(picked) > 0 {
		fmt.Fprintln(r.out, r.tr.Td("YourAnswer", map[string]any{
			"Answers": strings.Join(picked, ", "),
		}))
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.tr.T("CommandsHelp"))
	fmt.Fprint(r.out, "> ")
}

func (r *Runner) handleInput(sess *session.Session, q model.Question, input string) {
	switch strings.ToLower(input) {
	case "q", "f":
		sess.Finish()
	case "s":
		r.advanceOrFinish(sess)
	case "p":
		sess.Advance(-1)
	case "r":
		fmt.Fprintln(r.out, r.tr.Td("RevealAnswer", map[string]any{
			"Answers": answerSummary(q, q.Correct),
		}))
	case "":
		fmt.Fprintln(r.out, r.tr.T("InvalidInput"))
	default:
		labels, ok := parseSelection(q, input)
		if !ok {
			fmt.Fprintln(r.out, r.tr.T("InvalidInput"))
			return
		}
		sess.Select(q.Number, labels)
		fmt.Fprintln(r.out, r.tr.T("AnswerRecorded"))
		r.advanceOrFinish(sess)
	}
}

// advanceOrFinish moves past the current question; leaving the last
// question completes the session, as in the desktop original.
func (r *Runner) advanceOrFinish(sess *session.Session) {
	if sess.CurrentIndex() >= sess.Len()-1 {
		sess.Finish()
		return
	}
	sess.Advance(1)
}

func (r *Runner) printResults(sess *session.Session, chapter string) {
	report := score.Grade(sess)

	answered := 0
	for _, qs := range report.PerQuestion {
		if qs.Answered {
			answered++
		}
	}

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.tr.Td("QuizComplete", map[string]any{
		"Chapter":    chapter,
		"Score":      report.CorrectCount,
		"Total":      report.Total,
		"Percentage": strconv.FormatFloat(report.Percentage, 'f', 1, 64),
	}))
	fmt.Fprintln(r.out, r.tr.Tp("QuestionsAnswered", answered))

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.tr.T("ReviewHeader"))
	for _, e := range review.Build(sess) {
		mark := r.tr.T("WrongMark")
		if e.Correct {
			mark = r.tr.T("CorrectMark")
		}
		fmt.Fprintf(r.out, "\n%s [%s] %s\n", e.Number, mark, e.Text)
		if e.Answered {
			fmt.Fprintln(r.out, r.tr.Td("YourAnswer", map[string]any{
				"Answers": joinAnswers(e.SelectedLabels, e.SelectedTexts),
			}))
		} else {
			fmt.Fprintln(r.out, r.tr.T("NoAnswer"))
		}
		fmt.Fprintln(r.out, r.tr.Td("CorrectAnswer", map[string]any{
			"Answers": joinAnswers(e.CorrectLabels, e.CorrectTexts),
		}))
		if e.Reference != "" {
			fmt.Fprintln(r.out, r.tr.Td("Reference", map[string]any{
				"Reference": e.Reference,
			}))
		}
	}
}

// parseSelection turns user input into option labels. Accepts letters
// separated by commas or spaces, or a single digit 1-9 naming an option by
// its display position.
func parseSelection(q model.Question, input string) ([]string, bool) {
	input = strings.TrimSpace(input)

	if len(input) == 1 && input[0] >= '1' && input[0] <= '9' {
		pos := int(input[0] - '1')
		if pos >= len(q.Options) {
			return nil, false
		}
		return []string{q.Options[pos].Label}, true
	}

	var labels []string
	for _, tok := range strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\t'
	}) {
		tok = strings.ToUpper(strings.TrimSpace(tok))
		if len(tok) != 1 || !q.HasOption(tok) {
			return nil, false
		}
		labels = append(labels, tok)
	}
	if len(labels) == 0 {
		return nil, false
	}
	return labels, true
}

func answerSummary(q model.Question, labels []string) string {
	parts := make([]string, 0, len(labels))
	for _, l := range labels {
		if text, ok := q.OptionText(l); ok {
			parts = append(parts, fmt.Sprintf("%s. %s", l, text))
		}
	}
	return strings.Join(parts, " | ")
}

func joinAnswers(labels, texts []string) string {
	parts := make([]string, 0, len(labels))
	for i, l := range labels {
		if i < len(texts) {
			parts = append(parts, fmt.Sprintf("%s. %s", l, texts[i]))
		} else {
			parts = append(parts, l)
		}
	}
	return strings.Join(parts, " | ")
}

func displayChapter(chapter string) string {
	chapter = strings.TrimSpace(chapter)
	if chapter == "" || strings.EqualFold(chapter, "all") {
		return "All Chapters"
	}
	return model.NormalizeChapter(chapter)
}

func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
