// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
)

var (
	// Heading "Feedback" with nothing but whitespace after it.
	orphanFeedback = regexp.MustCompile(`(?m)^#+[ \t]+Feedback\s*\z`)

	// [label]: target "optional title"
	linkDefinition = regexp.MustCompile(
		`(?m)^\[[^\]\n]+\]:[ \t]+\S+(?:[ \t]+(?:"[^"\n]*"|'[^'\n]*'|\([^)\n]*\)))?[ \t]*$`)

	// Two or more consecutive blank or whitespace-only lines.
	blankLineRun = regexp.MustCompile(`\n(?:[ \t]*\n){2,}`)

	smartQuotes = strings.NewReplacer(
		"“", `"`,
		"”", `"`,
		"‘", "'",
		"’", "'",
	)
)

// normalizeQuotes replaces curly quotes and apostrophes with straight ones.
func normalizeQuotes(doc string) string {
	return smartQuotes.Replace(doc)
}

func removeOrphanFeedback(doc string) string {
	loc := orphanFeedback.FindStringIndex(doc)
	if loc == nil {
		return doc
	}
	return doc[:loc[0]]
}

// moveLinkDefinitions gathers reference-style link definitions at the end of
// the document, after one blank line, in their original order. Running it
// on its own output changes nothing.
func moveLinkDefinitions(doc string) string {
	defs := linkDefinition.FindAllString(doc, -1)
	if len(defs) == 0 {
		return doc
	}
	for i, d := range defs {
		defs[i] = strings.TrimRight(d, " \t")
	}
	body := strings.TrimRight(linkDefinition.ReplaceAllString(doc, ""), " \t\n")
	return body + "\n\n" + strings.Join(defs, "\n") + "\n"
}

// collapseBlankLines reduces every run of blank lines to one.
func collapseBlankLines(doc string) string {
	return blankLineRun.ReplaceAllString(doc, "\n\n")
}
