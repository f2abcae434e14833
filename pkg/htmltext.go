package welearn

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var innerWhitespace = regexp.MustCompile(`[ \t]*\n[ \t\n]*`)

// HTMLText returns the text content of an HTML fragment such as an
// assignment intro. Markup that cannot be parsed is returned unchanged.
func HTMLText(fragment string) string {
	document, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	text := innerWhitespace.ReplaceAllString(document.Text(), "\n")
	return strings.TrimSpace(text)
}
