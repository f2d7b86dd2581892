package i18n

import (
	"strings"
	"testing"
)

func newTranslator(t *testing.T, lang string) *Translator {
	t.Helper()
	tr, err := New(lang)
	if err != nil {
		t.Fatalf("New(%q): %v", lang, err)
	}
	return tr
}

func TestTranslateEnglish(t *testing.T) {
	tr := newTranslator(t, "en")

	if got := tr.T("AppTitle"); got != "CDMP Exam Practice" {
		t.Errorf("T(AppTitle) = %q", got)
	}
	if got := tr.T("TimeUp"); got != "Timer expired. Entering review mode." {
		t.Errorf("T(TimeUp) = %q", got)
	}
}

func TestTranslateArabic(t *testing.T) {
	tr := newTranslator(t, "ar")

	got := tr.T("Greeting")
	if !strings.Contains(got, "بسم الله الرحمن الرحيم") {
		t.Errorf("T(Greeting) = %q, want the original greeting", got)
	}
}

func TestTemplateData(t *testing.T) {
	tr := newTranslator(t, "en")

	got := tr.Td("ChapterInfo", map[string]any{"Chapter": "Data Quality", "Count": 12})
	want := "Chapter: Data Quality   |   Questions: 12"
	if got != want {
		t.Errorf("Td(ChapterInfo) = %q, want %q", got, want)
	}
}

func TestPlural(t *testing.T) {
	tr := newTranslator(t, "en")

	if got := tr.Tp("QuestionsAnswered", 1); got != "1 question answered." {
		t.Errorf("Tp(1) = %q", got)
	}
	if got := tr.Tp("QuestionsAnswered", 5); got != "5 questions answered." {
		t.Errorf("Tp(5) = %q", got)
	}
}

func TestMissingKeyFallsBackToID(t *testing.T) {
	tr := newTranslator(t, "en")

	if got := tr.T("NoSuchKey"); got != "NoSuchKey" {
		t.Errorf("T(NoSuchKey) = %q", got)
	}
}

func TestInvalidLanguage(t *testing.T) {
	if _, err := New("not a language"); err == nil {
		t.Error("expected an error for an unparseable language tag")
	}
}
