package types

import (
	"fmt"
	"time"
)

// Defaults for the WebFundamentals to web.dev conversion.
const (
	DefaultSitePrefix        = "https://developers.google.com/web/"
	DefaultRawPrefix         = "https://raw.githubusercontent.com/google/WebFundamentals/master/src/content/en/"
	DefaultRawExtension      = ".md"
	DefaultAssetHost         = "https://developers.google.com"
	DefaultLegacyImagePrefix = "/web/"
	DefaultBlogDir           = "src/site/content/en/blog/"
	DefaultRequiredTag       = "post"
	DefaultTimeout           = 30 * time.Second
	DefaultUserAgent         = "webdevify/0.1"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "webdevify/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for retrieving the legacy article.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// SitePrefix is the documentation site prefix every article address must start with.
	SitePrefix string `json:"site_prefix" yaml:"site_prefix"`

	// RawPrefix replaces SitePrefix to form the raw-content address.
	RawPrefix string `json:"raw_prefix" yaml:"raw_prefix"`

	// RawExtension is appended to the raw-content address (e.g. ".md").
	RawExtension string `json:"raw_extension" yaml:"raw_extension"`
}

// OutputMode selects what the convert command emits.
type OutputMode string

const (
	// OutputWebDev runs the full rule sequence (default).
	OutputWebDev OutputMode = "web.dev"
	// OutputWebFundamentals passes the fetched legacy text through unchanged.
	OutputWebFundamentals OutputMode = "webfundamentals"
)

// ParseOutputMode validates s as an OutputMode. An empty string selects
// OutputWebDev.
func ParseOutputMode(s string) (OutputMode, error) {
	switch OutputMode(s) {
	case "", OutputWebDev:
		return OutputWebDev, nil
	case OutputWebFundamentals:
		return OutputWebFundamentals, nil
	}
	return "", fmt.Errorf("unknown output mode %q (want %q or %q)", s, OutputWebDev, OutputWebFundamentals)
}

// MissingPolicy controls what happens when an optional legacy directive is
// absent from the article.
type MissingPolicy string

const (
	// MissingFail aborts the conversion (default).
	MissingFail MissingPolicy = "fail"
	// MissingWarn logs a warning and omits the frontmatter field.
	MissingWarn MissingPolicy = "warn"
)

// ParseMissingPolicy validates s as a MissingPolicy. An empty string selects
// MissingFail.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch MissingPolicy(s) {
	case "", MissingFail:
		return MissingFail, nil
	case MissingWarn:
		return MissingWarn, nil
	}
	return "", fmt.Errorf("unknown missing-directive policy %q (want %q or %q)", s, MissingFail, MissingWarn)
}

// ConvertConfig holds settings for the transformation pipeline.
type ConvertConfig struct {
	// AssetHost is prepended to legacy image paths to form download URLs.
	AssetHost string `json:"asset_host" yaml:"asset_host"`

	// LegacyImagePrefix is the path prefix that marks a src attribute as a
	// legacy site asset (e.g. "/web/").
	LegacyImagePrefix string `json:"legacy_image_prefix" yaml:"legacy_image_prefix"`

	// BlogDir is the target repository directory the command string changes into.
	BlogDir string `json:"blog_dir" yaml:"blog_dir"`

	// RequiredTag is always emitted first in the tags list.
	RequiredTag string `json:"required_tag" yaml:"required_tag"`

	// Missing selects the policy for absent optional directives.
	Missing MissingPolicy `json:"missing" yaml:"missing"`
}

// Config groups all settings for one invocation.
type Config struct {
	Fetch   FetchConfig   `json:"fetch" yaml:"fetch"`
	Convert ConvertConfig `json:"convert" yaml:"convert"`
	Output  OutputMode    `json:"output" yaml:"output"`
}

// DefaultConfig returns the settings for converting a developers.google.com
// article into a web.dev blog post.
func DefaultConfig() Config {
	return Config{
		Fetch: FetchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   DefaultTimeout,
				UserAgent: DefaultUserAgent,
			},
			SitePrefix:   DefaultSitePrefix,
			RawPrefix:    DefaultRawPrefix,
			RawExtension: DefaultRawExtension,
		},
		Convert: ConvertConfig{
			AssetHost:         DefaultAssetHost,
			LegacyImagePrefix: DefaultLegacyImagePrefix,
			BlogDir:           DefaultBlogDir,
			RequiredTag:       DefaultRequiredTag,
			Missing:           MissingFail,
		},
		Output: OutputWebDev,
	}
}
