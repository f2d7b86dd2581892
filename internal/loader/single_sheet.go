package loader

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FINAL094/CDMP-exam-practice/internal/model"
)

// optionColumn is one single-letter header in a single-sheet workbook.
type optionColumn struct {
	label string
	col   int
}

// parseSingleSheet handles the combined layout: one row per question with
// `Question Number`, `Question`, one column per option letter and `Correct`.
// Option letters are not capped: any single-letter header is an option.
func parseSingleSheet(f *excelize.File, sheet string) ([]model.Question, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, &FormatError{Reason: "unsupported structure: empty sheet"}
	}

	idx := headerIndex(rows[0])
	numberCol, ok := findColumn(idx, "question number", "questionnumber", "qnumber")
	if !ok {
		return nil, &FormatError{Reason: "unsupported structure: missing Question Number column"}
	}
	questionCol, ok := findColumn(idx, "question")
	if !ok {
		return nil, &FormatError{Reason: "unsupported structure: missing Question column"}
	}
	correctCol, ok := findColumn(idx, "correct", "answer")
	if !ok {
		return nil, &FormatError{Reason: "unsupported structure: missing Correct column"}
	}
	chapterCol, hasChapter := findColumn(idx, "knowledge area", "knowledgearea")
	sectionCol, hasSection := findColumn(idx, "dmbok section", "dmboksection")
	pageCol, hasPage := findColumn(idx, "dmbok page", "dmbokpage")

	// Collect option columns in sheet order so option display order matches
	// the source.
	var optionCols []optionColumn
	for col, h := range rows[0] {
		h = strings.TrimSpace(h)
		if m := labelToken.FindStringSubmatch(h); m != nil {
			optionCols = append(optionCols, optionColumn{label: strings.ToUpper(m[1]), col: col})
		}
	}
	if len(optionCols) < 2 {
		return nil, &FormatError{Reason: "unsupported structure: needs at least two option columns"}
	}

	var questions []model.Question
	seen := make(map[string]bool)

	for i, row := range rows[1:] {
		if rowEmpty(row) {
			continue
		}

		number := cell(row, numberCol)
		if number == "" {
			number = fmt.Sprintf("Q%d", i+1)
		}
		if seen[number] {
			return nil, formatErrorf(number, "duplicate question number")
		}
		seen[number] = true

		chapter := ""
		if hasChapter {
			chapter = cell(row, chapterCol)
		}
		if chapter == "" && hasSection {
			chapter = cell(row, sectionCol)
		}

		var refParts []string
		if hasSection {
			if s := cell(row, sectionCol); s != "" {
				refParts = append(refParts, s)
			}
		}
		if hasPage {
			if p := cell(row, pageCol); p != "" {
				refParts = append(refParts, p)
			}
		}

		var options []model.Option
		for _, oc := range optionCols {
			text := cell(row, oc.col)
			if text == "" {
				continue // blank cell means the question has fewer options
			}
			options = append(options, model.Option{Label: oc.label, Text: text})
		}

		q := model.Question{
			Number:    number,
			Chapter:   model.NormalizeChapter(chapter),
			Text:      cell(row, questionCol),
			Options:   options,
			Correct:   splitCorrectLabels(cell(row, correctCol)),
			Reference: strings.Join(refParts, " | "),
		}
		if err := validate(q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	return questions, nil
}
