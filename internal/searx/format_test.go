package searx

import (
	"strings"
	"testing"
)

func TestFormatSearchResultsBasic(t *testing.T) {
	data := &Response{
		Results: []Result{
			{Title: "A", URL: "http://a", Content: "x", Engines: []string{"g"}},
		},
		NumberOfResults: 1,
	}

	text := FormatSearchResults(data, "rust", 10, false)

	for _, want := range []string{
		`## Search results (web): "rust"`,
		"### 1. [A](http://a)",
		"x",
		"Sources: g",
		"Approximately 1 results found",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestFormatSearchResultsOmitsEmptyFields(t *testing.T) {
	data := &Response{
		Results: []Result{{Title: "B", URL: "http://b"}},
	}

	text := FormatSearchResults(data, "q", 10, false)

	if strings.Contains(text, "Approximately") {
		t.Fatalf("count line should be absent: %s", text)
	}
	if strings.Contains(text, "Sources:") || strings.Contains(text, "Date:") {
		t.Fatalf("metadata line should be absent: %s", text)
	}
	if strings.Contains(text, "Related suggestions") || strings.Contains(text, "Direct answers") {
		t.Fatalf("optional blocks should be absent: %s", text)
	}
}

func TestFormatSearchResultsNewsAnswersSuggestions(t *testing.T) {
	data := &Response{
		Results: []Result{
			{Title: "N", URL: "http://n", Engines: []string{"bing news"}, PublishedDate: "2026-01-02"},
		},
		Answers:     []string{"direct answer"},
		Suggestions: []string{"more news"},
	}

	text := FormatSearchResults(data, "topic", 10, true)

	for _, want := range []string{
		`## Search results (news): "topic"`,
		"### Direct answers",
		"> direct answer",
		"Sources: bing news | Date: 2026-01-02",
		"### Related suggestions",
		"- more news",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
}

func TestFormatSearchResultsCapsResults(t *testing.T) {
	data := &Response{
		Results: []Result{
			{Title: "1", URL: "u1"},
			{Title: "2", URL: "u2"},
			{Title: "3", URL: "u3"},
		},
		NumberOfResults: 99999,
	}

	text := FormatSearchResults(data, "q", 2, false)

	if !strings.Contains(text, "### 2. [2](u2)") {
		t.Fatalf("second result missing:\n%s", text)
	}
	if strings.Contains(text, "### 3.") {
		t.Fatalf("result list not capped at max_results:\n%s", text)
	}
	if !strings.Contains(text, "99,999") {
		t.Fatalf("reported total should not be capped:\n%s", text)
	}
}

func TestFormatSearchResultsEmpty(t *testing.T) {
	text := FormatSearchResults(&Response{}, "nothing", 10, false)
	if !strings.Contains(text, "No results found.") {
		t.Fatalf("missing empty marker:\n%s", text)
	}
}

func TestFormatImageResults(t *testing.T) {
	data := &Response{
		Results: []Result{
			{
				Title:         "Pic",
				URL:           "http://page",
				ImgSrc:        "http://img/pic.png",
				Source:        "http://source",
				Engines:       []string{"google images"},
				Content:       "snippet should be ignored",
				PublishedDate: "2026-01-01",
			},
		},
	}

	text := FormatImageResults(data, "cats", 10)

	for _, want := range []string{
		`## Image results: "cats"`,
		"### 1. Pic",
		"![Pic](http://img/pic.png)",
		"Source: http://source",
		"*Engine: google images*",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("missing %q in:\n%s", want, text)
		}
	}
	if strings.Contains(text, "snippet should be ignored") || strings.Contains(text, "2026-01-01") {
		t.Fatalf("image template must ignore snippet/date:\n%s", text)
	}
}

func TestFormatImageResultsFallbacks(t *testing.T) {
	data := &Response{Results: []Result{{URL: "http://page"}}}

	text := FormatImageResults(data, "q", 10)

	if !strings.Contains(text, "### 1. Untitled") {
		t.Fatalf("missing title fallback:\n%s", text)
	}
	if !strings.Contains(text, "![Untitled](http://page)") {
		t.Fatalf("img_src should fall back to url:\n%s", text)
	}
}

func TestGroupDigits(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tc := range cases {
		if got := groupDigits(tc.n); got != tc.want {
			t.Fatalf("groupDigits(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
