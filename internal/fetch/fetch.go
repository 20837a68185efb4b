// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch resolves a developers.google.com article address to its raw
// markdown source and downloads it.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/webdevify/internal/httputil"
	"github.com/pdiddy/webdevify/pkg/types"
)

// InvalidInputError reports an article address outside the documentation site.
type InvalidInputError struct {
	URL    string
	Prefix string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("the URL must start with %q, got %q", e.Prefix, e.URL)
}

// FetchError reports a failed retrieval of the raw article. Exactly one of
// StatusCode and Err is set.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Resolve validates articleURL against cfg.SitePrefix and derives the
// raw-content address and the directory slug.
func Resolve(articleURL string, cfg types.FetchConfig) (types.Article, error) {
	articleURL = strings.TrimSpace(articleURL)
	if cfg.SitePrefix == "" || !strings.HasPrefix(articleURL, cfg.SitePrefix) {
		return types.Article{}, &InvalidInputError{URL: articleURL, Prefix: cfg.SitePrefix}
	}

	trimmed := strings.TrimRight(articleURL, "/")
	rest := strings.TrimPrefix(trimmed, strings.TrimRight(cfg.SitePrefix, "/"))
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return types.Article{}, &InvalidInputError{URL: articleURL, Prefix: cfg.SitePrefix}
	}

	return types.Article{
		URL:    articleURL,
		RawURL: cfg.RawPrefix + rest + cfg.RawExtension,
		Slug:   Slug(trimmed),
	}, nil
}

// Slug returns the last path segment of an article address.
func Slug(articleURL string) string {
	s := strings.TrimRight(articleURL, "/")
	if i := strings.IndexAny(s, "?#"); i >= 0 {
		s = s[:i]
	}
	if i := strings.LastIndex(s, "/"); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Fetch downloads the raw markdown for article. Any status other than 200
// and any transport failure is returned as a *FetchError.
func Fetch(ctx context.Context, client *http.Client, article types.Article, cfg types.FetchConfig) (string, error) {
	status, body, err := httputil.Get(ctx, client, article.RawURL, cfg.UserAgent)
	if err != nil {
		return "", &FetchError{URL: article.RawURL, Err: err}
	}
	if status != http.StatusOK {
		return "", &FetchError{URL: article.RawURL, StatusCode: status}
	}
	return string(body), nil
}
