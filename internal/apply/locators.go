package apply

import (
	"strings"
	"unicode"

	"github.com/jonathan/jobscout/internal/browser"
)

// Static locators for the parts of the flow whose markup does not depend on
// configurable keyword sets.
var (
	entryLocators = []browser.Locator{
		`//button[.//span[contains(text(),'Easy Apply')]]`,
		`//button[contains(.,'Apply') and contains(.,'Easy')]`,
	}
	dialogLocator          = browser.Locator(`//div[contains(@role,'dialog')]`)
	fileInputLocator       = browser.Locator(`//input[@type='file']`)
	textareaLocator        = browser.Locator(`//textarea`)
	contentEditableLocator = browser.Locator(`//div[@contenteditable='true']`)
	dismissLocator         = browser.Locator(`//button[contains(@aria-label,'Dismiss') or contains(@aria-label,'Close')]`)
)

// capitalize upper-cases the first rune, matching how control labels are
// cased on the page while keyword sets stay lowercase.
func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// terminalLocator matches buttons whose label text contains any of the
// terminal keywords.
func terminalLocator(terms []string) browser.Locator {
	conds := make([]string, 0, len(terms))
	for _, t := range terms {
		conds = append(conds, "contains(text(),'"+capitalize(t)+"')")
	}
	return browser.Locator(`//button[.//span[` + strings.Join(conds, " or ") + `]]`)
}

// advanceLocator matches a wizard-advance button by its label.
func advanceLocator(label string) browser.Locator {
	return browser.Locator(`//button[.//span[contains(text(),'` + label + `')]]`)
}

// phoneLocator matches telephone inputs by type or by keyword in name/id.
func phoneLocator(terms []string) browser.Locator {
	conds := []string{"@type='tel'"}
	for _, t := range terms {
		conds = append(conds, "contains(@name,'"+t+"')", "contains(@id,'"+t+"')")
	}
	return browser.Locator(`//input[` + strings.Join(conds, " or ") + `]`)
}

// matchesAny reports whether any keyword occurs in any of the given
// attribute values, case-insensitively.
func matchesAny(keywords []string, values ...string) bool {
	for _, v := range values {
		lv := strings.ToLower(v)
		for _, k := range keywords {
			if k != "" && strings.Contains(lv, strings.ToLower(k)) {
				return true
			}
		}
	}
	return false
}
