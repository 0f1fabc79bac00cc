// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/pdiddy/job-matcher/pkg/types"
)

// envKeys are the scalar settings that JOB_MATCHER_* variables may
// override, e.g. JOB_MATCHER_CACHE_BACKEND=redis.
var envKeys = []string{
	"secrets_dir",
	"http.timeout",
	"http.user_agent",
	"match.max_results",
	"match.min_score",
	"match.source_timeout",
	"match.domain_filter",
	"cache.backend",
	"cache.ttl",
	"cache.path",
	"cache.redis_addr",
	"cache.redis_db",
}

// bindEnv registers envKeys with v under the JOB_MATCHER prefix.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, k := range envKeys {
		_ = v.BindEnv(k)
	}
}

// loadConfig overlays the settings held by v on the built-in defaults.
// Lists in the file replace the default lists rather than merging with
// them element by element.
func loadConfig(v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.ZeroFields = true
	})
	if err != nil {
		return types.Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Match.MinScore < 0 || cfg.Match.MinScore > 100 {
		return types.Config{}, fmt.Errorf("match.min_score %d must be in [0,100]", cfg.Match.MinScore)
	}
	return cfg, nil
}
