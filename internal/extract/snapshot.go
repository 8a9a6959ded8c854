package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// snapshotSelectors are CSS selectors tried against a rendered-HTML
// snapshot when live locators find nothing, most specific first.
var snapshotSelectors = []string{
	"#job-details",
	".jobs-description",
	".show-more-less-html__markup",
	".description__text",
	"[class*='job-description']",
	"section[class*='description']",
}

// descriptionFromHTML parses rendered markup and returns the first
// qualifying description text, or "".
func descriptionFromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	// Strip chrome that would pollute the text of broad selectors.
	doc.Find("nav, footer, header, script, style, noscript").Remove()

	for _, selector := range snapshotSelectors {
		selection := doc.Find(selector)
		if selection.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(selection.First().Text())
		if len(text) > minDescriptionLength {
			return text
		}
	}
	return ""
}
