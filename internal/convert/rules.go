// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// Book navigation front matter of the legacy site.
	projectPathLine = regexp.MustCompile(`(?m)^[ \t]*project_path:.*$`)
	bookPathLine    = regexp.MustCompile(`(?m)^[ \t]*book_path:.*$`)

	// Widgets and annotations with no web.dev counterpart.
	blinkComponents = regexp.MustCompile(`\{#\s+wf_blink_components:\s+.*?\s+#\}`)
	helpfulWidget   = regexp.MustCompile(`\{%\s+include\s+"web/_shared/helpful\.html"\s+%\}`)
	rssWidget       = regexp.MustCompile(`\{%\s+include\s+"web/_shared/rss-widget-updates\.html"\s+%\}`)

	headingOne      = regexp.MustCompile(`(?m)^#[ \t]+(.+?)[ \t]*$`)
	attributeList   = regexp.MustCompile(`[ \t]*\{:[^}]*\}$`)
	descriptionLine = regexp.MustCompile(`(?m)^description:[ \t]+(.+?)[ \t]*$`)
	contributor     = regexp.MustCompile(`\{%\s+include\s+"web/_shared/contributors/(.+?)\.html"\s+%\}`)

	featuredSnippet = regexp.MustCompile(`\{#\s+wf_featured_snippet:\s+(.*?)\s+#\}`)
	publishedOn     = regexp.MustCompile(`\{#\s+wf_published_on:\s+(\d{4}-\d{2}-\d{2})\s+#\}`)
	updatedOn       = regexp.MustCompile(`\{#\s+wf_updated_on:\s+(\d{4}-\d{2}-\d{2})\s+#\}`)
	tagsDirective   = regexp.MustCompile(`\{#\s+wf_tags:\s+(.*?)\s+#\}`)
	featuredImage   = regexp.MustCompile(`\{#\s+wf_featured_image:\s+(.*?)\s+#\}`)

	attemptClass = regexp.MustCompile(`\s+class=["']?attempt-(left|right)["']?`)

	singleLineComment = regexp.MustCompile(`\{#\s+.*?\s+#\}`)
	multiLineComment  = regexp.MustCompile(`(?s)\{%\s+comment\s+%\}.*?\{%\s+endcomment\s+%\}`)
)

// normalizeLineEndings converts \r\n and \r to \n so line anchors behave.
func normalizeLineEndings(doc string) string {
	return crlfOrCR.ReplaceAllString(doc, "\n")
}

func removeProjectPath(doc string) string {
	return projectPathLine.ReplaceAllString(doc, "")
}

func removeBookPath(doc string) string {
	return bookPathLine.ReplaceAllString(doc, "")
}

func removeBlinkComponents(doc string) string {
	return blinkComponents.ReplaceAllString(doc, "")
}

func removeHelpfulWidget(doc string) string {
	return helpfulWidget.ReplaceAllString(doc, "")
}

func removeRSSWidget(doc string) string {
	return rssWidget.ReplaceAllString(doc, "")
}

// cutFirst removes the first match of re from doc and returns the first
// capture group. ok is false when re does not match.
func cutFirst(re *regexp.Regexp, doc string) (capture, rest string, ok bool) {
	loc := re.FindStringSubmatchIndex(doc)
	if loc == nil {
		return "", doc, false
	}
	return doc[loc[2]:loc[3]], doc[:loc[0]] + doc[loc[1]:], true
}

// extractAll returns the first capture of re and doc with every match of re
// removed. Repeated legacy directives carry no extra information.
func extractAll(re *regexp.Regexp, doc string) (capture, rest string, ok bool) {
	m := re.FindStringSubmatch(doc)
	if m == nil {
		return "", doc, false
	}
	return m[1], re.ReplaceAllString(doc, ""), true
}

// convertTitle promotes the first level-one heading to the title field.
func convertTitle(doc string) (Result, error) {
	title, rest, ok := cutFirst(headingOne, doc)
	if !ok {
		return Result{}, &MissingDirectiveError{Directive: "level-one heading"}
	}
	// WebFundamentals titles carry a trailing {: .page-title } attribute list.
	title = strings.TrimSpace(attributeList.ReplaceAllString(title, ""))
	return Result{Doc: rest, Fields: []Field{StringField("title", title)}}, nil
}

// convertDescription turns the legacy description line into the subhead.
func convertDescription(doc string) (Result, error) {
	subhead, rest, ok := cutFirst(descriptionLine, doc)
	if !ok {
		return Result{}, &MissingDirectiveError{Directive: "description line"}
	}
	return Result{Doc: rest, Fields: []Field{StringField("subhead", subhead)}}, nil
}

// convertAuthors collects contributor includes in document order.
func convertAuthors(doc string) (Result, error) {
	matches := contributor.FindAllStringSubmatch(doc, -1)
	if len(matches) == 0 {
		return Result{}, &MissingDirectiveError{Directive: "contributor include"}
	}
	authors := make([]string, len(matches))
	for i, m := range matches {
		authors[i] = m[1]
	}
	return Result{
		Doc:    contributor.ReplaceAllString(doc, ""),
		Fields: []Field{ListField("authors", authors...)},
	}, nil
}

func convertFeaturedSnippet(doc string) (Result, error) {
	snippet, rest, ok := extractAll(featuredSnippet, doc)
	if !ok {
		return Result{}, &MissingDirectiveError{Directive: "wf_featured_snippet directive"}
	}
	return Result{Doc: rest, Fields: []Field{StringField("description", snippet)}}, nil
}

func convertPublishedOn(doc string) (Result, error) {
	date, rest, ok := extractAll(publishedOn, doc)
	if !ok {
		return Result{}, &MissingDirectiveError{Directive: "wf_published_on directive"}
	}
	return Result{Doc: rest, Fields: []Field{DateField("date", date)}}, nil
}

func convertUpdatedOn(doc string) (Result, error) {
	date, rest, ok := extractAll(updatedOn, doc)
	if !ok {
		return Result{}, &MissingDirectiveError{Directive: "wf_updated_on directive"}
	}
	return Result{Doc: rest, Fields: []Field{DateField("updated", date)}}, nil
}

// convertTags returns a rule emitting required first, then the legacy tags.
func convertTags(required string) func(string) (Result, error) {
	return func(doc string) (Result, error) {
		list, rest, ok := extractAll(tagsDirective, doc)
		if !ok {
			return Result{}, &MissingDirectiveError{Directive: "wf_tags directive"}
		}

		tags := []string{}
		if required != "" {
			tags = append(tags, required)
		}
		for _, tag := range strings.Split(list, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" || tag == required {
				continue
			}
			tags = append(tags, tag)
		}

		field := ListField("tags", tags...)
		if required != "" {
			field.Value.Content[0].LineComment = fmt.Sprintf(
				"# %s is a required tag for the article to show up in the blog.", required)
		}
		return Result{Doc: rest, Fields: []Field{field}}, nil
	}
}

// convertFeaturedImage leaves hero and alt for the author: the legacy image
// is not in the web.dev hero format.
func convertFeaturedImage(doc string) (Result, error) {
	image, rest, ok := extractAll(featuredImage, doc)
	if !ok {
		return Result{}, &MissingDirectiveError{Directive: "wf_featured_image directive"}
	}
	return Result{Doc: rest, Fields: []Field{
		PlaceholderField("hero", fmt.Sprintf("⚠️ [TODO] Fix hero, old hero was %q!", image)),
		PlaceholderField("alt", "⚠️ [TODO] Add alt text!"),
	}}, nil
}

func rewriteAttemptClasses(doc string) string {
	return attemptClass.ReplaceAllString(doc, ` class="w-figure w-figure--inline-${1}" style="max-width:50%"`)
}

func removeSingleLineComments(doc string) string {
	return singleLineComment.ReplaceAllString(doc, "")
}

func removeMultiLineComments(doc string) string {
	return multiLineComment.ReplaceAllString(doc, "")
}
