package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/webdevify/pkg/types"
)

// Config keys. Each can be set in webdevify.yaml or as WEBDEVIFY_<KEY>.
const (
	keySitePrefix        = "site_prefix"
	keyRawPrefix         = "raw_prefix"
	keyRawExtension      = "raw_extension"
	keyAssetHost         = "asset_host"
	keyLegacyImagePrefix = "legacy_image_prefix"
	keyBlogDir           = "blog_dir"
	keyRequiredTag       = "required_tag"
	keyMissing           = "missing"
	keyOutput            = "output"
	keyTimeout           = "timeout"
	keyUserAgent         = "user_agent"
)

func setConfigDefaults() {
	d := types.DefaultConfig()
	viper.SetDefault(keySitePrefix, d.Fetch.SitePrefix)
	viper.SetDefault(keyRawPrefix, d.Fetch.RawPrefix)
	viper.SetDefault(keyRawExtension, d.Fetch.RawExtension)
	viper.SetDefault(keyAssetHost, d.Convert.AssetHost)
	viper.SetDefault(keyLegacyImagePrefix, d.Convert.LegacyImagePrefix)
	viper.SetDefault(keyBlogDir, d.Convert.BlogDir)
	viper.SetDefault(keyRequiredTag, d.Convert.RequiredTag)
	viper.SetDefault(keyMissing, string(d.Convert.Missing))
	viper.SetDefault(keyOutput, string(d.Output))
	viper.SetDefault(keyTimeout, d.Fetch.Timeout)
	viper.SetDefault(keyUserAgent, d.Fetch.UserAgent)
}

// loadConfig assembles the invocation settings from flags, environment,
// config file and defaults, in viper's precedence order.
func loadConfig() (types.Config, error) {
	output, err := types.ParseOutputMode(viper.GetString(keyOutput))
	if err != nil {
		return types.Config{}, err
	}
	missing, err := types.ParseMissingPolicy(viper.GetString(keyMissing))
	if err != nil {
		return types.Config{}, err
	}

	return types.Config{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration(keyTimeout),
				UserAgent: viper.GetString(keyUserAgent),
			},
			SitePrefix:   viper.GetString(keySitePrefix),
			RawPrefix:    viper.GetString(keyRawPrefix),
			RawExtension: viper.GetString(keyRawExtension),
		},
		Convert: types.ConvertConfig{
			AssetHost:         viper.GetString(keyAssetHost),
			LegacyImagePrefix: viper.GetString(keyLegacyImagePrefix),
			BlogDir:           viper.GetString(keyBlogDir),
			RequiredTag:       viper.GetString(keyRequiredTag),
			Missing:           missing,
		},
		Output: output,
	}, nil
}
