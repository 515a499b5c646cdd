package models

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	BucketName string `mapstructure:"bucket_name"`
	Region     string `mapstructure:"region"`
	Prefix     string `mapstructure:"prefix"`
}

type Config struct {
	MenuImageURL string        `mapstructure:"menu_image_url"`
	MenuFile     string        `mapstructure:"menu_file"`
	AssetsDir    string        `mapstructure:"assets_dir"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	ExtractModel string `mapstructure:"extract_model"`
	ImageModel   string `mapstructure:"image_model"`
	// ImageKeyFallback allows the image-generation credential to fall back
	// to the shared GEMINI_API_KEY the way the extraction credential does.
	ImageKeyFallback bool `mapstructure:"image_key_fallback"`

	GenRetryAttempts int           `mapstructure:"gen_retry_attempts"`
	GenRetryBase     time.Duration `mapstructure:"gen_retry_base"`

	PriorityCategories []string `mapstructure:"priority_categories"`

	SkipExtract bool `mapstructure:"skip_extract"`
	SkipImages  bool `mapstructure:"skip_images"`
	TodayOnly   bool `mapstructure:"today_only"`
	Print       bool `mapstructure:"print"`

	AssetsDestination string             `mapstructure:"assets_destination"`
	CloudStorage      CloudStorageConfig `mapstructure:"cloud_storage"`
}

// LoadConfig initializes and reads the configuration using Viper.
// A config file is optional; flags and environment variables override it.
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("menupix")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	viper.SetDefault("menu_image_url", "https://cafe.sebastians.com/sebclients/3130alewife.jpg")
	viper.SetDefault("menu_file", "data/menu.json")
	viper.SetDefault("assets_dir", "assets/menu")
	viper.SetDefault("fetch_timeout", 30*time.Second)
	viper.SetDefault("extract_model", "gemini-1.5-flash")
	viper.SetDefault("image_model", "gemini-2.0-flash-exp")
	viper.SetDefault("image_key_fallback", true)
	viper.SetDefault("gen_retry_attempts", 4)
	viper.SetDefault("gen_retry_base", 8*time.Second)
	viper.SetDefault("priority_categories", DefaultPriorityCategories)
	viper.SetDefault("assets_destination", "local")

	if err := viper.ReadInConfig(); err != nil {
		// the file is optional unless one was named explicitly
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && cfgFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeDurationHookFunc(),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// LookupCredential returns the first non-empty environment variable from
// the candidate list, or an AuthError naming everything that was tried.
func LookupCredential(vars ...string) (string, error) {
	for _, name := range vars {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	return "", &AuthError{Vars: vars}
}
