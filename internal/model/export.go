package model

import "sort"

// BankExport is the top-level JSON structure for question bank export.
type BankExport struct {
	File      string     `json:"file"`
	Count     int        `json:"count"`
	Chapters  []string   `json:"chapters"`
	Questions []Question `json:"questions"`
}

// NewBankExport builds an export document from a loaded question set.
func NewBankExport(file string, questions []Question) BankExport {
	seen := make(map[string]bool)
	var chapters []string
	for _, q := range questions {
		if !seen[q.Chapter] {
			seen[q.Chapter] = true
			chapters = append(chapters, q.Chapter)
		}
	}
	sort.Strings(chapters)

	return BankExport{
		File:      file,
		Count:     len(questions),
		Chapters:  chapters,
		Questions: questions,
	}
}
