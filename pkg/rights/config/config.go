// Package config loads the assistant configuration: a YAML file in the
// repo's configs/ directory, with environment variable overrides for the
// values that change per deployment. A .env file is honored when present.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/hellofriends/rights-engine/pkg/rights/internalerr"
)

// Config is the full assistant configuration.
type Config struct {
	KBPath     string `yaml:"kb_path"`
	Stopwords  string `yaml:"stopwords"`
	Catalog    string `yaml:"catalog"`
	Language   string `yaml:"language"`
	MinOverlap int    `yaml:"min_overlap"`
	UploadsDir string `yaml:"uploads_dir"`
	DBPath     string `yaml:"db_path"`

	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LLMConfig configures the optional OpenAI-compatible endpoint. All fields
// empty means the LLM paths stay disabled.
type LLMConfig struct {
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	EmbedModel string `yaml:"embed_model"`
	APIKey     string `yaml:"api_key"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: read config: %v", internalerr.ErrInvalidConfig, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: parse config: %v", internalerr.ErrInvalidConfig, err)
		}
	}

	// .env is optional; plain environment variables work the same way.
	_ = godotenv.Load()
	applyEnv(cfg)

	if cfg.KBPath == "" {
		return nil, fmt.Errorf("%w: kb_path is required", internalerr.ErrInvalidConfig)
	}
	if cfg.MinOverlap < 1 {
		cfg.MinOverlap = 1
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		KBPath:     "kb/rights_sg.yaml",
		Language:   "en",
		MinOverlap: 1,
		UploadsDir: "rag/uploads",
		Server:     ServerConfig{Addr: ":8080"},
		Log:        LogConfig{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.KBPath, "RIGHTS_KB_PATH")
	set(&cfg.Stopwords, "RIGHTS_STOPWORDS")
	set(&cfg.Catalog, "RIGHTS_CATALOG")
	set(&cfg.Language, "RIGHTS_LANGUAGE")
	set(&cfg.UploadsDir, "RIGHTS_UPLOADS_DIR")
	set(&cfg.DBPath, "RIGHTS_DB_PATH")
	set(&cfg.Server.Addr, "RIGHTS_SERVER_ADDR")
	set(&cfg.LLM.BaseURL, "RIGHTS_LLM_BASE_URL")
	set(&cfg.LLM.Model, "RIGHTS_LLM_MODEL")
	set(&cfg.LLM.EmbedModel, "RIGHTS_LLM_EMBED_MODEL")
	set(&cfg.LLM.APIKey, "RIGHTS_LLM_API_KEY")
	set(&cfg.Log.Level, "RIGHTS_LOG_LEVEL")

	if v := os.Getenv("RIGHTS_MIN_OVERLAP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MinOverlap = n
		}
	}
}
