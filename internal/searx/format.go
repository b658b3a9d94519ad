package searx

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatSearchResults renders a SearXNG response as Markdown text blocks:
// heading, approximate count, direct answers, numbered results with
// source/date metadata, and related suggestions. Optional fields that are
// absent produce no line at all.
func FormatSearchResults(data *Response, query string, maxResults int, news bool) string {
	results := capResults(data.Results, maxResults)

	kind := "web"
	if news {
		kind = "news"
	}
	lines := []string{fmt.Sprintf("## Search results (%s): %q\n", kind, query)}

	if data.NumberOfResults > 0 {
		lines = append(lines, fmt.Sprintf("*Approximately %s results found*\n", groupDigits(int64(data.NumberOfResults))))
	}

	if len(data.Answers) > 0 {
		lines = append(lines, "### Direct answers\n")
		for _, ans := range data.Answers {
			lines = append(lines, fmt.Sprintf("> %s\n", ans))
		}
	}

	if len(results) == 0 {
		lines = append(lines, "No results found.\n")
	} else {
		for i, r := range results {
			title := r.Title
			if title == "" {
				title = "Untitled"
			}
			lines = append(lines, fmt.Sprintf("### %d. [%s](%s)\n", i+1, title, r.URL))
			if r.Content != "" {
				lines = append(lines, r.Content+"\n")
			}
			var meta []string
			if len(r.Engines) > 0 {
				meta = append(meta, "Sources: "+strings.Join(r.Engines, ", "))
			}
			if r.PublishedDate != "" {
				meta = append(meta, "Date: "+r.PublishedDate)
			}
			if len(meta) > 0 {
				lines = append(lines, fmt.Sprintf("*%s*\n", strings.Join(meta, " | ")))
			}
		}
	}

	if len(data.Suggestions) > 0 {
		lines = append(lines, "\n### Related suggestions\n")
		for _, s := range data.Suggestions {
			lines = append(lines, "- "+s)
		}
	}

	return strings.Join(lines, "\n")
}

// FormatImageResults renders image hits with an inline embed per result.
// Snippets and publish dates are not part of the image template.
func FormatImageResults(data *Response, query string, maxResults int) string {
	results := capResults(data.Results, maxResults)

	lines := []string{fmt.Sprintf("## Image results: %q\n", query)}

	if len(results) == 0 {
		lines = append(lines, "No images found.\n")
	} else {
		for i, r := range results {
			title := r.Title
			if title == "" {
				title = "Untitled"
			}
			imgURL := r.ImgSrc
			if imgURL == "" {
				imgURL = r.URL
			}
			source := r.Source
			if source == "" {
				source = r.URL
			}

			lines = append(lines, fmt.Sprintf("### %d. %s\n", i+1, title))
			if imgURL != "" {
				lines = append(lines, fmt.Sprintf("![%s](%s)\n", title, imgURL))
			}
			if source != "" {
				lines = append(lines, fmt.Sprintf("Source: %s\n", source))
			}
			if len(r.Engines) > 0 {
				lines = append(lines, fmt.Sprintf("*Engine: %s*\n", strings.Join(r.Engines, ", ")))
			}
		}
	}

	return strings.Join(lines, "\n")
}

func capResults(results []Result, max int) []Result {
	if max >= 0 && len(results) > max {
		return results[:max]
	}
	return results
}

// groupDigits formats n with thousands separators (12345 -> "12,345").
func groupDigits(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
