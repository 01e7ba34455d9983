package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig loads configuration from file using viper.
// CLI flags > environment > config file > defaults precedence; the flag
// layer is applied by the CLI after loading, for flags the user changed.
func LoadConfig(configPath string) (*CrackConfig, error) {
	v := viper.New()

	// Defaults matching DefaultCrackConfig
	v.SetDefault("crack.dictionary", "dictionary.txt")
	v.SetDefault("crack.common_words", "")
	v.SetDefault("crack.threshold", 0.80)
	v.SetDefault("crack.max_hits", 50)
	v.SetDefault("crack.workers", 1)
	v.SetDefault("crack.chunk_size", 10000)
	v.SetDefault("crack.progress_every", 50)
	v.SetDefault("crack.key_limit", 0)
	v.SetDefault("crack.bifid_alphabet", AlphabetStandard)

	// Bind environment variables with PC_ prefix
	v.SetEnvPrefix("PC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &CrackConfig{
		Dictionary:    v.GetString("crack.dictionary"),
		CommonWords:   v.GetString("crack.common_words"),
		Threshold:     v.GetFloat64("crack.threshold"),
		MaxHits:       v.GetInt("crack.max_hits"),
		Workers:       v.GetInt("crack.workers"),
		ChunkSize:     v.GetInt("crack.chunk_size"),
		ProgressEvery: v.GetInt("crack.progress_every"),
		KeyLimit:      v.GetInt("crack.key_limit"),
		BifidAlphabet: v.GetString("crack.bifid_alphabet"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
