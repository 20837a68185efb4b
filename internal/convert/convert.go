// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rewrites a WebFundamentals article into a web.dev article.
//
// The pipeline is a fixed, ordered list of rules. Rules before the
// frontmatter is closed strip legacy directives and derive frontmatter
// fields; rules after it only clean up the finished document. Rule N+1
// always sees the complete output of rule N.
package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdiddy/webdevify/pkg/types"
)

// MissingDirectiveError reports that a rule did not find the legacy
// directive it extracts a frontmatter field from.
type MissingDirectiveError struct {
	Rule      string
	Directive string
}

func (e *MissingDirectiveError) Error() string {
	return fmt.Sprintf("%s: no %s found in article", e.Rule, e.Directive)
}

// Result is the outcome of applying one rule.
type Result struct {
	// Doc is the rewritten document.
	Doc string
	// Fields are frontmatter entries derived by the rule.
	Fields []Field
	// Assets are absolute asset URLs the rewritten document now refers to
	// by file name only.
	Assets []string
}

// Rule is one named rewrite step.
type Rule struct {
	Name string
	// Required rules abort on a missing directive regardless of the
	// configured MissingPolicy.
	Required bool
	Apply    func(doc string) (Result, error)
}

// text wraps a rule that only rewrites text.
func text(name string, fn func(string) string) Rule {
	return Rule{Name: name, Apply: func(doc string) (Result, error) {
		return Result{Doc: fn(doc)}, nil
	}}
}

// Pipeline converts legacy articles. A Pipeline holds no per-article state
// and may be reused.
type Pipeline struct {
	cfg     types.ConvertConfig
	logger  *slog.Logger
	rewrite []Rule
	cleanup []Rule
}

// New builds the pipeline for cfg. A nil logger discards log output.
func New(cfg types.ConvertConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pipeline{
		cfg:    cfg,
		logger: logger,
		rewrite: []Rule{
			text("normalizeLineEndings", normalizeLineEndings),
			text("removeProjectPath", removeProjectPath),
			text("removeBookPath", removeBookPath),
			text("removeBlinkComponents", removeBlinkComponents),
			text("removeHelpfulWidget", removeHelpfulWidget),
			text("removeRSSWidget", removeRSSWidget),
			{Name: "convertTitle", Required: true, Apply: convertTitle},
			{Name: "convertDescription", Required: true, Apply: convertDescription},
			{Name: "convertAuthors", Apply: convertAuthors},
			{Name: "convertFeaturedSnippet", Apply: convertFeaturedSnippet},
			{Name: "convertPublishedOn", Apply: convertPublishedOn},
			{Name: "convertUpdatedOn", Apply: convertUpdatedOn},
			{Name: "convertTags", Apply: convertTags(cfg.RequiredTag)},
			{Name: "convertFeaturedImage", Apply: convertFeaturedImage},
			{Name: "rewriteAssetURLs", Apply: rewriteAssetURLs(cfg.AssetHost, cfg.LegacyImagePrefix)},
			text("rewriteAttemptClasses", rewriteAttemptClasses),
			text("rewriteCallouts", rewriteCallouts),
			text("removeSingleLineComments", removeSingleLineComments),
			text("removeMultiLineComments", removeMultiLineComments),
		},
		cleanup: []Rule{
			text("normalizeQuotes", normalizeQuotes),
			text("removeOrphanFeedback", removeOrphanFeedback),
			text("moveLinkDefinitions", moveLinkDefinitions),
			text("collapseBlankLines", collapseBlankLines),
		},
	}
}

// closeFrontmatterRule names the step between the rewrite and cleanup rules.
const closeFrontmatterRule = "closeFrontmatter"

// RuleNames returns every step in application order.
func (p *Pipeline) RuleNames() []string {
	names := make([]string, 0, len(p.rewrite)+len(p.cleanup)+1)
	for _, r := range p.rewrite {
		names = append(names, r.Name)
	}
	names = append(names, closeFrontmatterRule)
	for _, r := range p.cleanup {
		names = append(names, r.Name)
	}
	return names
}

// Convert runs every rule over raw and returns the web.dev document and the
// command string that scaffolds article.Slug and downloads its assets. On
// error nothing is returned.
func (p *Pipeline) Convert(article types.Article, raw string) (types.Conversion, error) {
	var (
		fm     Frontmatter
		assets AssetSet
	)

	doc, err := p.apply(p.rewrite, raw, &fm, &assets)
	if err != nil {
		return types.Conversion{}, err
	}

	header, err := fm.Marshal()
	if err != nil {
		return types.Conversion{}, fmt.Errorf("%s: %w", closeFrontmatterRule, err)
	}
	doc = closeFrontmatter(header, doc)
	p.logger.Debug("applied rule", slog.String("rule", closeFrontmatterRule), slog.Int("fields", fm.Len()))

	// The frontmatter is closed: cleanup rules get no accumulator.
	doc, err = p.apply(p.cleanup, doc, nil, nil)
	if err != nil {
		return types.Conversion{}, err
	}

	urls := assets.URLs()
	return types.Conversion{
		Markdown: doc,
		Command:  BuildCommand(p.cfg.BlogDir, article.Slug, urls),
		Assets:   urls,
	}, nil
}

func (p *Pipeline) apply(rules []Rule, doc string, fm *Frontmatter, assets *AssetSet) (string, error) {
	for _, r := range rules {
		res, err := r.Apply(doc)
		if err != nil {
			var missing *MissingDirectiveError
			if !errors.As(err, &missing) {
				return "", fmt.Errorf("%s: %w", r.Name, err)
			}
			missing.Rule = r.Name
			if r.Required || p.cfg.Missing != types.MissingWarn {
				return "", missing
			}
			p.logger.Warn("legacy directive missing, field omitted",
				slog.String("rule", r.Name),
				slog.String("directive", missing.Directive))
			continue
		}

		if fm == nil && len(res.Fields) > 0 {
			return "", fmt.Errorf("%s: frontmatter already closed", r.Name)
		}
		if assets == nil && len(res.Assets) > 0 {
			return "", fmt.Errorf("%s: asset list already finalized", r.Name)
		}
		if fm != nil {
			fm.Add(res.Fields...)
		}
		if assets != nil {
			assets.Add(res.Assets...)
		}

		p.logger.Debug("applied rule", slog.String("rule", r.Name), slog.Int("fields", len(res.Fields)))
		doc = res.Doc
	}
	return doc, nil
}

// closeFrontmatter prepends the rendered header to the body. Blank lines
// left at the top of the body by removed directives are dropped.
func closeFrontmatter(header, body string) string {
	return header + "\n" + strings.TrimLeft(body, "\n")
}
