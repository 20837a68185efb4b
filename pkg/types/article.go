// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Article identifies one legacy article selected for conversion.
type Article struct {
	// URL is the public developers.google.com address given by the user.
	URL string `json:"url" yaml:"url"`

	// RawURL is the raw-content address the markdown source is fetched from.
	RawURL string `json:"raw_url" yaml:"raw_url"`

	// Slug is the last path segment of URL; it names the target directory.
	Slug string `json:"slug" yaml:"slug"`
}

// Conversion holds the artifacts produced for an article in converted mode.
type Conversion struct {
	// Markdown is the rewritten web.dev document.
	Markdown string `json:"markdown" yaml:"markdown"`

	// Command scaffolds the target directory and downloads every asset.
	Command string `json:"command" yaml:"command"`

	// Assets lists the unique absolute asset URLs in order of first appearance.
	Assets []string `json:"assets" yaml:"assets"`
}
