package parser

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/starford/inkpress/internal/apperr"
	"github.com/starford/inkpress/internal/models"
)

func TestParse_HeaderAndBody(t *testing.T) {
	input := []byte("# Hello World\n[go, blog, go]\n<!-- Date: Tue, 05 Mar 2024 10:20:30 +0000 -->\n> First part.\n> Second part.\n===\nBody line one.\n\nBody line two.\n")
	r, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Hello World" {
		t.Errorf("title = %q, want %q", r.Title, "Hello World")
	}
	if !reflect.DeepEqual(r.Tags, []string{"go", "blog", "go"}) {
		t.Errorf("tags = %v, want [go blog go]", r.Tags)
	}
	if r.Summary != "First part. Second part." {
		t.Errorf("summary = %q", r.Summary)
	}
	want := time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)
	if !r.HasDate || !r.Date.Equal(want) {
		t.Errorf("date = %v (has=%v), want %v", r.Date, r.HasDate, want)
	}
	if r.Body != "Body line one.\n\nBody line two.\n" {
		t.Errorf("body = %q", r.Body)
	}
	if !r.Terminated {
		t.Error("expected terminated header")
	}
}

func TestParse_BodyPreservesLineStructure(t *testing.T) {
	input := []byte("# T\n===\r\nline one\r\n\r\n  indented\nno trailing newline")
	r, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Body != "line one\r\n\r\n  indented\nno trailing newline" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_HeaderMarkersInBodyAreContent(t *testing.T) {
	input := []byte("# Real\n===\n# Not a title\n[not, tags]\n===\n")
	r, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Real" || len(r.Tags) != 0 {
		t.Errorf("body markers leaked into header: %+v", r)
	}
	if r.Body != "# Not a title\n[not, tags]\n===\n" {
		t.Errorf("body = %q", r.Body)
	}
}

func TestParse_OrderInsensitiveAndBlankLines(t *testing.T) {
	input := []byte("\n\n> Summary.\n\n[b]\n# Title\n\n===\nx\n")
	r, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Title != "Title" || r.Summary != "Summary." || len(r.Tags) != 1 || r.Tags[0] != "b" {
		t.Errorf("unexpected result: %+v", r)
	}
}

func TestParse_UnparseableDateIsNotFatal(t *testing.T) {
	input := []byte("# T\n<!-- Date: sometime last week -->\n===\n")
	r, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.HasDate {
		t.Errorf("expected no explicit date, got %v", r.Date)
	}
}

func TestParse_CanonicalDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	input := []byte("<!-- Date: 2023-12-24 18:00:00 -->\n===\n")
	r, err := Parse(input, Options{Location: loc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2023, 12, 24, 18, 0, 0, 0, loc)
	if !r.HasDate || !r.Date.Equal(want) {
		t.Errorf("date = %v, want %v", r.Date, want)
	}
}

func TestParse_QuotedTags(t *testing.T) {
	r, err := Parse([]byte("[\"Sock Monkey\", 'Humor',  geek ]\n===\n"), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(r.Tags, []string{"Sock Monkey", "Humor", "geek"}) {
		t.Errorf("tags = %q", r.Tags)
	}
}

func TestParse_UnterminatedTagListIsFatal(t *testing.T) {
	_, err := Parse([]byte("[news, tech\n===\n"), Options{})
	if !errors.Is(err, apperr.ErrTagFormat) {
		t.Fatalf("err = %v, want ErrTagFormat", err)
	}
	if !apperr.Is(err, apperr.CategoryTag) {
		t.Errorf("expected tag category, got %v", err)
	}
}

func TestParse_MissingDelimiter(t *testing.T) {
	input := []byte("# Never ends\nsome text\n")

	r, err := Parse(input, Options{})
	if err != nil {
		t.Fatalf("lenient parse should not fail: %v", err)
	}
	if r.Terminated || r.Body != "" {
		t.Errorf("expected unterminated empty body, got %+v", r)
	}

	_, err = Parse(input, Options{Strict: true})
	if !errors.Is(err, apperr.ErrMissingDelimiter) {
		t.Errorf("strict err = %v, want ErrMissingDelimiter", err)
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	res := &Result{}
	if err := classify(res, "# [not tags]", Options{}); err != nil {
		t.Fatalf("classify: %v", err)
	}
	if res.Title != "[not tags]" || res.Tags != nil {
		t.Errorf("unexpected classification: %+v", res)
	}

	res = &Result{}
	_ = classify(res, "just prose in the header", Options{})
	if !reflect.DeepEqual(res, &Result{}) {
		t.Errorf("unmatched line should be ignored, got %+v", res)
	}
}

func TestRoundTrip(t *testing.T) {
	original := &models.Post{
		Title:        "Round Trip",
		Tags:         []string{"news", "Sock Monkey", "news", "C++", "café <3 & co"},
		Summary:      "A short summary.",
		Timestamp:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("", -8*60*60)),
		ExplicitDate: true,
		BodyMarkdown: "First paragraph.\n\n```go\nfmt.Println(\"hi\")\n```\n",
	}
	data, err := Serialize(original)
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	r, err := Parse(data, Options{Strict: true})
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, data)
	}
	if r.Title != original.Title {
		t.Errorf("title = %q", r.Title)
	}
	if !reflect.DeepEqual(r.Tags, original.Tags) {
		t.Errorf("tags = %v", r.Tags)
	}
	if r.Summary != original.Summary {
		t.Errorf("summary = %q", r.Summary)
	}
	if !r.HasDate || !r.Date.Equal(original.Timestamp) {
		t.Errorf("date = %v, want %v", r.Date, original.Timestamp)
	}
	if r.Body != original.BodyMarkdown {
		t.Errorf("body = %q", r.Body)
	}
}

func TestSerialize_NoDateNoSummary(t *testing.T) {
	data, err := Serialize(&models.Post{Title: "Bare", BodyMarkdown: "x\n"})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if string(data) != "# Bare\n[]\n===\nx\n" {
		t.Errorf("serialized = %q", data)
	}
}

func TestSerialize_RejectsUnrepresentableTags(t *testing.T) {
	for _, tag := range []string{"a,b", `say "hi"`, "[x]", "", `C\C++`, "a\tb", "line\u2028sep", "bad\xffutf8"} {
		_, err := Serialize(&models.Post{Title: "T", Tags: []string{tag}})
		if !errors.Is(err, apperr.ErrTagFormat) {
			t.Errorf("tag %q: err = %v, want ErrTagFormat", tag, err)
		}
	}
}
