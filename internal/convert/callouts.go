// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
)

// calloutParagraph matches a paragraph opened by a known label. Group 1 is
// the label, group 2 the text up to the next blank line.
var calloutParagraph = regexp.MustCompile(
	`(?ms)^(Note|Caution|Warning|Success|Key Point|Key Term|Objective|Dogfood):[ \t]+(\S.*?)\n\n`)

// calloutVariants maps legacy labels to web.dev Aside variants. Note is the
// default Aside and has no variant.
var calloutVariants = map[string]string{
	"Note":      "",
	"Caution":   "caution",
	"Warning":   "warning",
	"Success":   "success",
	"Key Point": "gotchas",
	"Key Term":  "key-term",
	"Objective": "objective",
	"Dogfood":   "gotchas",
}

// rewriteCallouts wraps labelled paragraphs in {% Aside %} blocks with the
// body indented one level. The blank line that ended the paragraph stays
// after the closing marker.
func rewriteCallouts(doc string) string {
	return replaceAllSubmatchFunc(calloutParagraph, doc, func(groups []string) string {
		open := "{% Aside %}"
		if v := calloutVariants[groups[1]]; v != "" {
			open = "{% Aside " + v + " %}"
		}
		body := "  " + strings.ReplaceAll(groups[2], "\n", "\n  ")
		return open + "\n" + body + "\n{% endAside %}\n\n"
	})
}
