package parser

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// imgSrcPattern matches the src attribute of the first <img> tag.
// [^>]+ is greedy, so within one tag the last `src="` wins (e.g. data-src after src).
var imgSrcPattern = regexp.MustCompile(`<img[^>]+src="([^">]+)"`)

// ImageExtractor finds a cover image URL in an item's raw content.
type ImageExtractor interface {
	ExtractImageURL(content string) string
}

// ImageExtractorFunc adapts a plain function to ImageExtractor.
type ImageExtractorFunc func(content string) string

func (f ImageExtractorFunc) ExtractImageURL(content string) string { return f(content) }

// NewImageExtractor returns the extractor for mode ("pattern" or "markup").
// Anything else gets the pattern extractor.
func NewImageExtractor(mode string) ImageExtractor {
	if mode == "markup" {
		return ImageExtractorFunc(ExtractImageURLFromMarkup)
	}
	return ImageExtractorFunc(ExtractImageURL)
}

// ExtractImageURL returns the first `<img ... src="...">` value in content, or "".
func ExtractImageURL(content string) string {
	m := imgSrcPattern.FindStringSubmatch(content)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractImageURLFromMarkup parses content as HTML and returns the src of the
// first <img> element that has a non-empty one. Unlike the pattern, it accepts
// single-quoted and unquoted attributes and decodes entities.
func ExtractImageURLFromMarkup(content string) string {
	if !strings.Contains(strings.ToLower(content), "<img") {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return ""
	}

	var result string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil || result != "" {
			return
		}

		if n.Type == html.ElementNode && n.Data == "img" {
			for _, a := range n.Attr {
				if strings.ToLower(a.Key) == "src" && strings.TrimSpace(a.Val) != "" {
					result = strings.TrimSpace(a.Val)
					return
				}
			}
		}

		for c := n.FirstChild; c != nil && result == ""; c = c.NextSibling {
			walk(c)
		}
	}

	walk(doc)
	return result
}
