// Package config loads the runtime configuration and initializes logging.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full runtime configuration. It is loaded once at startup,
// merged over the built-in defaults, and read-only afterwards.
type Config struct {
	SuccessThreshold       float64       `yaml:"success_threshold" mapstructure:"success_threshold"`
	PolitenessDelaySeconds int           `yaml:"politeness_delay_seconds" mapstructure:"politeness_delay_seconds"`
	Browser                BrowserConfig `yaml:"selenium" mapstructure:"selenium"`
	Debug                  DebugConfig   `yaml:"debug" mapstructure:"debug"`
	API                    APIConfig     `yaml:"api_endpoint" mapstructure:"api_endpoint"`
	WaitCSSSelectors       []string      `yaml:"wait_css_selectors" mapstructure:"wait_css_selectors"`
	Store                  StoreConfig   `yaml:"store" mapstructure:"store"`
	Log                    LogConfig     `yaml:"log" mapstructure:"log"`
}

// BrowserConfig configures the rendered-browser acquisition method. The file
// key is "selenium" for compatibility with existing config files.
type BrowserConfig struct {
	Headless            bool   `yaml:"headless" mapstructure:"headless"`
	SaveScreenshots     bool   `yaml:"save_screenshots" mapstructure:"save_screenshots"`
	SleepAfterLoad      int    `yaml:"sleep_after_load" mapstructure:"sleep_after_load"`
	WaitSeconds         int    `yaml:"wait_seconds" mapstructure:"wait_seconds"`
	PageLoadTimeoutSecs int    `yaml:"page_load_timeout_secs" mapstructure:"page_load_timeout_secs"`
	ScreenshotDir       string `yaml:"screenshot_dir" mapstructure:"screenshot_dir"`
}

// DebugConfig controls debug-only side effects of the browser method.
type DebugConfig struct {
	SaveHTML bool   `yaml:"save_html" mapstructure:"save_html"`
	HTMLDir  string `yaml:"html_dir" mapstructure:"html_dir"`
}

// APIConfig describes the optional structured API acquisition method. The
// method is only attempted when URL is set.
type APIConfig struct {
	URL     string            `yaml:"url" mapstructure:"url"`
	Method  string            `yaml:"method" mapstructure:"method"`
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
	Params  map[string]string `yaml:"params" mapstructure:"params"`
	Body    map[string]any    `yaml:"body" mapstructure:"body"`
}

// StoreConfig configures the optional SQLite run history.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from the given YAML or JSON file (format chosen by
// extension) merged over defaults, plus FIELDHARVEST_* environment variables.
// A missing or unparsable file degrades to defaults with a warning on stderr
// rather than aborting; no configuration problem is fatal.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("fieldharvest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("FIELDHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("success_threshold", 0.5)
	v.SetDefault("politeness_delay_seconds", 2)
	v.SetDefault("selenium.headless", false)
	v.SetDefault("selenium.save_screenshots", true)
	v.SetDefault("selenium.sleep_after_load", 3)
	v.SetDefault("selenium.wait_seconds", 15)
	v.SetDefault("selenium.page_load_timeout_secs", 30)
	v.SetDefault("selenium.screenshot_dir", "screenshots")
	v.SetDefault("debug.save_html", false)
	v.SetDefault("debug.html_dir", ".")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			// The logger isn't up yet; defaults still apply.
			fmt.Fprintf(os.Stderr, "config: %v (continuing with defaults)\n", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
