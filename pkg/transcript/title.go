package transcript

import (
	"html"
	"regexp"
	"strings"

	"github.com/santaclaude2025/ccdigest/pkg/utils"
)

// MaxTitleLength is the maximum length for session titles
const MaxTitleLength = 100

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// cleanTitle removes HTML tags, decodes entities and collapses whitespace.
func cleanTitle(input string) string {
	cleaned := htmlTagRegex.ReplaceAllString(input, "")
	decoded := html.UnescapeString(cleaned)
	decoded = strings.Join(strings.Fields(decoded), " ")
	return utils.Truncate(decoded, MaxTitleLength)
}
