// Package loader reads a question workbook into the normalized question
// model. Two layouts are recognized: a two-sheet workbook ("Ques" + "Ans")
// where answers are joined to questions by number, and a single-sheet
// workbook with one column per option letter.
package loader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/FINAL094/CDMP-exam-practice/internal/model"
)

// FormatError reports a workbook that is present but unusable: wrong
// structure, or a row that fails validation. Question carries the question
// number when one could be identified.
type FormatError struct {
	Question string
	Reason   string
}

func (e *FormatError) Error() string {
	if e.Question != "" {
		return fmt.Sprintf("question %s: %s", e.Question, e.Reason)
	}
	return e.Reason
}

func formatErrorf(question, format string, args ...any) error {
	return &FormatError{Question: question, Reason: fmt.Sprintf(format, args...)}
}

// Load opens the workbook at path and parses it. The file is closed before
// Load returns; a missing file surfaces the fs.ErrNotExist chain so callers
// can tell "file not found" apart from "file present but unsupported".
func Load(path string) ([]model.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	defer f.Close()

	questions, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse workbook %s: %w", path, err)
	}
	return questions, nil
}

// Parse normalizes an open workbook into a question list. Parsing the same
// workbook twice yields equal results; the workbook is never modified.
func Parse(f *excelize.File) ([]model.Question, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Reason: "workbook has no sheets"}
	}

	var quesSheet, ansSheet string
	for _, s := range sheets {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "ques":
			quesSheet = s
		case "ans":
			ansSheet = s
		}
	}
	if quesSheet != "" && ansSheet != "" {
		return parseTwoSheet(f, quesSheet, ansSheet)
	}
	return parseSingleSheet(f, sheets[0])
}

// cell returns a trimmed cell value, tolerating ragged rows.
func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func rowEmpty(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// headerIndex maps lowercased, trimmed header names to column positions.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	return idx
}

func findColumn(idx map[string]int, variants ...string) (int, bool) {
	for _, v := range variants {
		if i, ok := idx[strings.ToLower(v)]; ok {
			return i, true
		}
	}
	return -1, false
}

var (
	labelToken     = regexp.MustCompile(`^([A-Za-z])\.?$`)
	labelSeparator = regexp.MustCompile(`[,;/\s]+`)
)

// splitCorrectLabels parses a correct-answer cell such as "A,C" or "B; D"
// into option labels. Separators follow the original file conventions.
func splitCorrectLabels(value string) []string {
	var labels []string
	for _, tok := range labelSeparator.Split(strings.TrimSpace(value), -1) {
		if m := labelToken.FindStringSubmatch(tok); m != nil {
			labels = append(labels, strings.ToUpper(m[1]))
		}
	}
	return model.NormalizeLabels(labels)
}

// validate enforces the per-question invariants shared by both layouts: at
// least two options and one correct label, no blank or repeated option
// labels, and every correct label resolving to an option.
func validate(q model.Question) error {
	if len(q.Options) < 2 || len(q.Correct) == 0 {
		return formatErrorf(q.Number, "invalid question: needs at least two options and one correct label")
	}
	seen := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		if opt.Label == "" {
			return formatErrorf(q.Number, "option with blank label")
		}
		if seen[opt.Label] {
			return formatErrorf(q.Number, "duplicate option label %s", opt.Label)
		}
		seen[opt.Label] = true
	}
	for _, l := range q.Correct {
		if !q.HasOption(l) {
			return formatErrorf(q.Number, "correct answer %s references missing option", l)
		}
	}
	return nil
}
