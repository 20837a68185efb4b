// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/adrg/frontmatter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/webdevify/pkg/types"
)

var testArticle = types.Article{
	URL:    "https://developers.google.com/web/updates/2020/01/my-article",
	RawURL: types.DefaultRawPrefix + "updates/2020/01/my-article.md",
	Slug:   "my-article",
}

const scaffold = "cd src/site/content/en/blog/ && mkdir my-article && cd my-article && touch index.md"

// legacyDirectives are the lines a convertible article needs, keyed by a
// short name so tests can drop one at a time.
var legacyDirectives = []struct {
	name string
	line string
	rule string
}{
	{"title", "# My Title", "convertTitle"},
	{"description", "description: short desc", "convertDescription"},
	{"snippet", "{# wf_featured_snippet: snippet text #}", "convertFeaturedSnippet"},
	{"published", "{# wf_published_on: 2020-01-01 #}", "convertPublishedOn"},
	{"updated", "{# wf_updated_on: 2020-02-02 #}", "convertUpdatedOn"},
	{"tags", "{# wf_tags: a,b #}", "convertTags"},
	{"image", "{# wf_featured_image: /img/x.png #}", "convertFeaturedImage"},
	{"author", `{% include "web/_shared/contributors/jane.html" %}`, "convertAuthors"},
}

// legacyDoc joins every directive except the skipped ones, followed by body.
func legacyDoc(body string, skip ...string) string {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	var lines []string
	for _, d := range legacyDirectives {
		if !skipped[d.name] {
			lines = append(lines, d.line)
		}
	}
	return strings.Join(append(lines, body), "\n")
}

type webDevFrontmatter struct {
	Title       string   `yaml:"title"`
	Subhead     string   `yaml:"subhead"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Authors     []string `yaml:"authors"`
}

func newTestPipeline(t *testing.T, policy types.MissingPolicy) (*Pipeline, *bytes.Buffer) {
	t.Helper()
	cfg := types.DefaultConfig().Convert
	cfg.Missing = policy
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(cfg, logger), &logs
}

func TestConvert_EndToEnd(t *testing.T) {
	p, _ := newTestPipeline(t, types.MissingFail)

	res, err := p.Convert(testArticle, legacyDoc("Body text."))
	require.NoError(t, err)
	out := res.Markdown

	var fm webDevFrontmatter
	body, err := frontmatter.Parse(strings.NewReader(out), &fm)
	require.NoError(t, err)

	assert.Equal(t, "My Title", fm.Title)
	assert.Equal(t, "short desc", fm.Subhead)
	assert.Equal(t, "snippet text", fm.Description)
	assert.Equal(t, []string{"post", "a", "b"}, fm.Tags)
	assert.Equal(t, []string{"jane"}, fm.Authors)
	assert.Equal(t, "Body text.", strings.TrimSpace(string(body)))

	assert.Contains(t, out, "\ndate: 2020-01-01\n")
	assert.Contains(t, out, "\nupdated: 2020-02-02\n")
	assert.Contains(t, out, `[TODO] Fix hero, old hero was "/img/x.png"!`)
	assert.Contains(t, out, "[TODO] Add alt text!")

	// Field order follows the web.dev frontmatter layout.
	last := -1
	for _, key := range []string{"title", "subhead", "description", "date", "updated", "tags", "hero", "alt", "authors"} {
		i := strings.Index(out, "\n"+key+":")
		require.GreaterOrEqual(t, i, 0, "missing %s", key)
		assert.Greater(t, i, last, "%s out of order", key)
		last = i
	}

	assert.NotContains(t, out, "{#")
	assert.NotContains(t, out, "{%")
	assert.Empty(t, res.Assets)
	assert.Equal(t, scaffold, res.Command)
}

func TestConvert_MissingDirective(t *testing.T) {
	p, _ := newTestPipeline(t, types.MissingFail)

	for _, d := range legacyDirectives {
		t.Run(d.name, func(t *testing.T) {
			res, err := p.Convert(testArticle, legacyDoc("Body text.", d.name))

			var missing *MissingDirectiveError
			require.True(t, errors.As(err, &missing), "want *MissingDirectiveError, got %v", err)
			assert.Equal(t, d.rule, missing.Rule)
			assert.Equal(t, types.Conversion{}, res, "no partial output")
		})
	}
}

func TestConvert_WarnPolicyOmitsFields(t *testing.T) {
	p, logs := newTestPipeline(t, types.MissingWarn)

	res, err := p.Convert(testArticle, legacyDoc("Body text.", "updated", "image", "author"))
	require.NoError(t, err)

	assert.NotContains(t, res.Markdown, "updated:")
	assert.NotContains(t, res.Markdown, "hero:")
	assert.NotContains(t, res.Markdown, "authors:")
	assert.Contains(t, res.Markdown, "date: 2020-01-01")
	assert.Contains(t, logs.String(), "legacy directive missing")
	assert.Contains(t, logs.String(), "rule=convertUpdatedOn")
}

func TestConvert_WarnPolicyKeepsTitleMandatory(t *testing.T) {
	p, _ := newTestPipeline(t, types.MissingWarn)

	for _, name := range []string{"title", "description"} {
		_, err := p.Convert(testArticle, legacyDoc("Body text.", name))
		var missing *MissingDirectiveError
		assert.True(t, errors.As(err, &missing), "%s: got %v", name, err)
	}
}

func TestConvert_AssetDeduplication(t *testing.T) {
	p, _ := newTestPipeline(t, types.MissingFail)
	body := strings.Join([]string{
		`<img src="/web/updates/images/2020/01/a.png" alt="first">`,
		`<picture><source srcset="x" src="/web/updates/images/2020/01/a.png" type="image/png">`,
		`<img class="attempt-left" src="/web/updates/images/2020/01/a.png"></picture>`,
		`<img src="/web/updates/images/2020/01/b.jpg">`,
		`<img src="https://example.com/c.png">`,
	}, "\n")

	res, err := p.Convert(testArticle, legacyDoc(body))
	require.NoError(t, err)

	wantA := "https://developers.google.com/web/updates/images/2020/01/a.png"
	wantB := "https://developers.google.com/web/updates/images/2020/01/b.jpg"
	assert.Equal(t, []string{wantA, wantB}, res.Assets)
	assert.Equal(t, 1, strings.Count(res.Command, "curl -o a.png "+wantA))
	assert.Equal(t, scaffold+" && curl -o a.png "+wantA+" && curl -o b.jpg "+wantB, res.Command)

	assert.Equal(t, 3, strings.Count(res.Markdown, `src="a.png"`))
	assert.Contains(t, res.Markdown, `src="b.jpg"`)
	assert.Contains(t, res.Markdown, `src="https://example.com/c.png"`)
	assert.NotContains(t, res.Markdown, "/web/updates/images")
	assert.Contains(t, res.Markdown, `class="w-figure w-figure--inline-left" style="max-width:50%"`)
}

func TestConvert_CleanupRules(t *testing.T) {
	p, _ := newTestPipeline(t, types.MissingFail)
	body := strings.Join([]string{
		"project_path: /web/_project.yaml",
		"book_path: /web/updates/_book.yaml",
		"{# wf_blink_components: Blink>CSS #}",
		"",
		"It’s “quoted”. See [docs][1].",
		"",
		"[1]: https://example.com/docs",
		"",
		"",
		"",
		"Warning: be careful",
		"",
		"{% comment %}",
		"internal",
		"{% endcomment %}",
		`{% include "web/_shared/helpful.html" %}`,
		`{% include "web/_shared/rss-widget-updates.html" %}`,
		"",
		"## Feedback",
	}, "\n")

	res, err := p.Convert(testArticle, legacyDoc(body))
	require.NoError(t, err)
	out := res.Markdown

	assert.Contains(t, out, `It's "quoted". See [docs][1].`)
	assert.Contains(t, out, "{% Aside warning %}\n  be careful\n{% endAside %}")
	assert.True(t, strings.HasSuffix(out, "\n\n[1]: https://example.com/docs\n"), "got %q", out)
	assert.NotContains(t, out, "Feedback")
	assert.NotContains(t, out, "project_path")
	assert.NotContains(t, out, "book_path")
	assert.NotContains(t, out, "internal")
	assert.NotContains(t, out, "\n\n\n")
}

func TestRuleNames_Order(t *testing.T) {
	p := New(types.DefaultConfig().Convert, nil)
	names := p.RuleNames()

	index := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		t.Fatalf("rule %s not found", name)
		return -1
	}

	order := []string{
		"removeProjectPath",
		"convertTitle",
		"convertDescription",
		"convertAuthors",
		"convertFeaturedImage",
		"rewriteAssetURLs",
		"rewriteAttemptClasses",
		"rewriteCallouts",
		"removeMultiLineComments",
		"closeFrontmatter",
		"normalizeQuotes",
		"removeOrphanFeedback",
		"moveLinkDefinitions",
		"collapseBlankLines",
	}
	for i := 1; i < len(order); i++ {
		assert.Less(t, index(order[i-1]), index(order[i]), "%s before %s", order[i-1], order[i])
	}
	assert.Equal(t, "collapseBlankLines", names[len(names)-1])
}

func TestBuildCommand(t *testing.T) {
	assert.Equal(t, "cd blog/ && mkdir post && cd post && touch index.md", BuildCommand("blog/", "post", nil))
	assert.Equal(t,
		"cd blog/ && mkdir post && cd post && touch index.md && curl -o x.png https://h/web/x.png",
		BuildCommand("blog/", "post", []string{"https://h/web/x.png"}))
}
