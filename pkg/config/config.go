package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "HANWORD"
	fileName  = "hanword"
)

type Config struct {
	Server    Server                 `mapstructure:"server"`
	CORS      CORS                   `mapstructure:"cors"`
	Tokenizer map[string]interface{} `mapstructure:"tokenizer"`
	Analysis  Analysis               `mapstructure:"analysis"`
	Keyword   Keyword                `mapstructure:"keyword"`
	Cache     Cache                  `mapstructure:"cache"`
	Metrics   Metrics                `mapstructure:"metrics"`
}

type Server struct {
	Addr            string        `mapstructure:"addr"`
	MaxConns        int           `mapstructure:"max_conns"`
	Debug           bool          `mapstructure:"debug"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// MaxBodyBytes caps request bodies, after snappy decoding as well as
	// on the wire. 0 means unlimited.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes"`
}

type CORS struct {
	Enabled      bool     `mapstructure:"enabled"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	// AllowCredentials with the "*" origin echoes the caller's origin,
	// since browsers reject credentials on a wildcard.
	AllowCredentials bool `mapstructure:"allow_credentials"`
}

type Analysis struct {
	Stopwords     []string `mapstructure:"stopwords"`
	StopwordsFile string   `mapstructure:"stopwords_file"`
}

type Keyword struct {
	DefaultTopN  int `mapstructure:"default_top_n"`
	MaxFeatures  int `mapstructure:"max_features"`
	BatchWorkers int `mapstructure:"batch_workers"`
	// MaxBatch limits texts per batch request; 0 means unlimited.
	MaxBatch int `mapstructure:"max_batch"`
}

type Cache struct {
	// Size is the number of cached results; 0 disables caching.
	Size int `mapstructure:"size"`
}

type Metrics struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// TokenizerType is the engine name in the tokenizer section.
func (c *Config) TokenizerType() string {
	if t, ok := c.Tokenizer["type"].(string); ok && t != "" {
		return t
	}
	return "gojieba"
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.max_conns", 0)
	v.SetDefault("server.debug", false)
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.max_body_bytes", 8<<20)

	v.SetDefault("cors.enabled", true)
	v.SetDefault("cors.allow_origins", []string{"*"})
	v.SetDefault("cors.allow_credentials", true)

	v.SetDefault("tokenizer.type", "gojieba")
	v.SetDefault("tokenizer.hmm", true)
	for _, k := range []string{"dict_path", "hmm_path", "user_dict_path", "idf_path", "stop_words_path"} {
		v.SetDefault("tokenizer."+k, "")
	}

	v.SetDefault("analysis.stopwords", []string{})
	v.SetDefault("analysis.stopwords_file", "")

	v.SetDefault("keyword.default_top_n", 5)
	v.SetDefault("keyword.max_features", 1000)
	v.SetDefault("keyword.batch_workers", 4)
	v.SetDefault("keyword.max_batch", 1000)

	v.SetDefault("cache.size", 1024)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Default returns the built-in configuration, ignoring files and
// environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c, err := decode(v)
	if err != nil {
		panic(err)
	}
	return c
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads .env, then the config file, then HANWORD_* environment
// variables. An empty path searches ~/.hanword.yaml and ./hanword.yaml; a
// missing file there is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "load .env")
	}
	v := newViper()
	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, errors.Wrapf(err, "expand config path %s", path)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", expanded)
		}
		return decode(v)
	}
	if home, err := homedir.Dir(); err == nil {
		if p := filepath.Join(home, "."+fileName+".yaml"); fileExists(p) {
			v.SetConfigFile(p)
		}
	}
	if v.ConfigFileUsed() == "" && fileExists(fileName+".yaml") {
		v.SetConfigFile(fileName + ".yaml")
	}
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", v.ConfigFileUsed())
		}
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	// env overrides reach Get but not nested maps, so resolve the engine
	// section key by key
	tok := make(map[string]interface{})
	for _, k := range v.AllKeys() {
		if !strings.HasPrefix(k, "tokenizer.") {
			continue
		}
		if k == "tokenizer.hmm" {
			tok["hmm"] = v.GetBool(k)
			continue
		}
		tok[strings.TrimPrefix(k, "tokenizer.")] = v.Get(k)
	}
	c.Tokenizer = tok
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Server.MaxBodyBytes < 0 {
		return errors.Errorf("server.max_body_bytes must be >= 0, got %d", c.Server.MaxBodyBytes)
	}
	if c.Keyword.DefaultTopN < 0 {
		return errors.Errorf("keyword.default_top_n must be >= 0, got %d", c.Keyword.DefaultTopN)
	}
	if c.Keyword.MaxFeatures < 0 {
		return errors.Errorf("keyword.max_features must be >= 0, got %d", c.Keyword.MaxFeatures)
	}
	if c.Keyword.BatchWorkers < 1 {
		return errors.Errorf("keyword.batch_workers must be >= 1, got %d", c.Keyword.BatchWorkers)
	}
	if c.Cache.Size < 0 {
		return errors.Errorf("cache.size must be >= 0, got %d", c.Cache.Size)
	}
	return nil
}

func fileExists(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && !fi.IsDir()
}
