package model

import (
	"sort"
	"strconv"
	"strings"
)

// ChapterUnspecified is assigned to questions with no usable chapter value.
const ChapterUnspecified = "Unspecified"

// Chapters maps DMBOK chapter numbers to knowledge-area names.
var Chapters = map[int]string{
	1:  "Data Management",
	2:  "Data Governance",
	3:  "Data Handling Ethics",
	4:  "Data Quality",
	5:  "Data Management Organization and Role Expectation",
	6:  "Reference & Master Data",
	7:  "Big Data and Data Science",
	8:  "Data Security",
	9:  "Data Architecture",
	10: "Data Integration & Interoperability",
	11: "Data Modeling and Design",
	12: "Metadata",
	13: "Data Warehousing and Business Intelligence",
	14: "Data Storage and Operations",
	15: "Document and Content Management",
}

// NormalizeChapter converts a raw chapter cell into a knowledge-area name.
// Numeric values (including "2.0"-style floats) map through the chapter
// catalog; known names pass unchanged; anything else is kept trimmed.
func NormalizeChapter(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ChapterUnspecified
	}

	if n, err := strconv.Atoi(value); err == nil {
		if name, ok := Chapters[n]; ok {
			return name
		}
	} else if f, err := strconv.ParseFloat(value, 64); err == nil && f == float64(int(f)) {
		if name, ok := Chapters[int(f)]; ok {
			return name
		}
	}

	return value
}

// ChapterNames returns the catalog names in chapter-number order.
func ChapterNames() []string {
	nums := make([]int, 0, len(Chapters))
	for n := range Chapters {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	names := make([]string, 0, len(nums))
	for _, n := range nums {
		names = append(names, Chapters[n])
	}
	return names
}

// FilterByChapter returns the questions belonging to one chapter. The
// chapter may be given by catalog number or by name; empty or "all" selects
// everything. The input slice is never modified.
func FilterByChapter(questions []Question, chapter string) []Question {
	chapter = strings.TrimSpace(chapter)
	if chapter == "" || strings.EqualFold(chapter, "all") {
		return questions
	}
	want := NormalizeChapter(chapter)

	var filtered []Question
	for _, q := range questions {
		if strings.EqualFold(q.Chapter, want) {
			filtered = append(filtered, q)
		}
	}
	return filtered
}
