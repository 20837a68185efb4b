// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"path"
	"regexp"
	"strings"
)

// commandSeparator joins the shell commands of the command string.
const commandSeparator = " && "

// assetTag matches the src attribute of an img or source tag. Group 1 is
// everything before src, group 2 the attribute value.
var assetTag = regexp.MustCompile(`(<(?:img|source)\s+[^>]*?)src="([^"]+)"`)

// AssetSet is an ordered set of asset URLs; the first insertion fixes the
// position.
type AssetSet struct {
	urls []string
	seen map[string]bool
}

// Add inserts urls not already present.
func (s *AssetSet) Add(urls ...string) {
	if s.seen == nil {
		s.seen = make(map[string]bool)
	}
	for _, u := range urls {
		if s.seen[u] {
			continue
		}
		s.seen[u] = true
		s.urls = append(s.urls, u)
	}
}

// URLs returns the set in order of first appearance.
func (s *AssetSet) URLs() []string {
	out := make([]string, len(s.urls))
	copy(out, s.urls)
	return out
}

// rewriteAssetURLs returns a rule that points legacy site images at
// co-located files. Every src starting with prefix is replaced by its file
// name; the absolute URL (host + path) is reported so the command string can
// download it. Other src values are left alone.
func rewriteAssetURLs(host, prefix string) func(string) (Result, error) {
	host = strings.TrimRight(host, "/")
	return func(doc string) (Result, error) {
		var set AssetSet
		out := replaceAllSubmatchFunc(assetTag, doc, func(groups []string) string {
			before, src := groups[1], groups[2]
			if prefix == "" || !strings.HasPrefix(src, prefix) {
				return groups[0]
			}
			set.Add(host + src)
			return before + `src="` + path.Base(src) + `"`
		})
		return Result{Doc: out, Assets: set.URLs()}, nil
	}
}

// BuildCommand returns the shell command that creates the article directory
// under blogDir and downloads every asset next to index.md.
func BuildCommand(blogDir, slug string, assets []string) string {
	parts := []string{
		"cd " + blogDir,
		"mkdir " + slug,
		"cd " + slug,
		"touch index.md",
	}
	for _, u := range assets {
		parts = append(parts, "curl -o "+path.Base(u)+" "+u)
	}
	return strings.Join(parts, commandSeparator)
}

// replaceAllSubmatchFunc is regexp.ReplaceAllStringFunc with access to the
// capture groups of each match.
func replaceAllSubmatchFunc(re *regexp.Regexp, s string, fn func(groups []string) string) string {
	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		groups := make([]string, len(loc)/2)
		for i := range groups {
			if loc[2*i] >= 0 {
				groups[i] = s[loc[2*i]:loc[2*i+1]]
			}
		}
		b.WriteString(s[last:loc[0]])
		b.WriteString(fn(groups))
		last = loc[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
