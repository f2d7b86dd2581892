package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FINAL094/CDMP-exam-practice/internal/model"
)

// answerRow is one option row from the "Ans" sheet before joining.
type answerRow struct {
	text      string
	label     string
	correct   bool
	reference string
}

// parseTwoSheet handles the layout with a "Ques" sheet of questions and an
// "Ans" sheet of options keyed by question number.
func parseTwoSheet(f *excelize.File, quesSheet, ansSheet string) ([]model.Question, error) {
	quesRows, err := f.GetRows(quesSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", quesSheet, err)
	}
	ansRows, err := f.GetRows(ansSheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", ansSheet, err)
	}
	if len(quesRows) == 0 || len(ansRows) == 0 {
		return nil, &FormatError{Reason: "unsupported structure: empty question or answer sheet"}
	}

	qIdx := headerIndex(quesRows[0])
	qidCol, ok1 := findColumn(qIdx, "qid")
	textCol, ok2 := findColumn(qIdx, "question")
	if !ok1 || !ok2 {
		return nil, &FormatError{Reason: "unsupported structure: question sheet needs qid and question columns"}
	}
	chapterCol, hasChapter := findColumn(qIdx, "chapter")

	aIdx := headerIndex(ansRows[0])
	aQidCol, ok1 := findColumn(aIdx, "qid")
	optCol, ok2 := findColumn(aIdx, "options", "option")
	valueCol, ok3 := findColumn(aIdx, "value")
	pointCol, ok4 := findColumn(aIdx, "point")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, &FormatError{Reason: "unsupported structure: answer sheet needs qid, options, value and point columns"}
	}
	refCol, hasRef := findColumn(aIdx, "ref", "reference")

	// Group answer rows by question number, preserving sheet order.
	answers := make(map[string][]answerRow)
	for _, row := range ansRows[1:] {
		if rowEmpty(row) {
			continue
		}
		qid := cell(row, aQidCol)
		if qid == "" {
			continue
		}
		point, _ := strconv.Atoi(cell(row, pointCol))
		ref := ""
		if hasRef {
			ref = cell(row, refCol)
		}
		answers[qid] = append(answers[qid], answerRow{
			text:      cell(row, optCol),
			label:     strings.ToUpper(cell(row, valueCol)),
			correct:   point != 0,
			reference: ref,
		})
	}

	var questions []model.Question
	seen := make(map[string]bool)

	for i, row := range quesRows[1:] {
		if rowEmpty(row) {
			continue
		}

		number := cell(row, qidCol)
		if number == "" {
			number = fmt.Sprintf("Q%d", i+1)
		}
		if seen[number] {
			return nil, formatErrorf(number, "duplicate question number")
		}
		seen[number] = true

		rows, ok := answers[number]
		if !ok {
			return nil, formatErrorf(number, "missing answers")
		}

		var (
			options   []model.Option
			correct   []string
			reference string
		)
		for _, a := range rows {
			options = append(options, model.Option{Label: a.label, Text: a.text})
			if a.correct {
				correct = append(correct, a.label)
			}
			if reference == "" {
				reference = a.reference
			}
		}

		chapter := ""
		if hasChapter {
			chapter = cell(row, chapterCol)
		}

		q := model.Question{
			Number:    number,
			Chapter:   model.NormalizeChapter(chapter),
			Text:      cell(row, textCol),
			Options:   options,
			Correct:   model.NormalizeLabels(correct),
			Reference: reference,
		}
		if err := validate(q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, nil
}
