package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HumanizeSlug turns a dash or underscore separated identifier such as
// "side-by-side" into a display title ("Side By Side").
func HumanizeSlug(slug string) string {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return ""
	}
	words := strings.FieldsFunc(slug, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
