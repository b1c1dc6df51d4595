package config

import (
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	ApiURL         string        `yaml:"api_url" validate:"required,url"`
	Port           int           `yaml:"port"`
	ApiTimeout     time.Duration `yaml:"api_timeout"` // 0 means requests never time out
	SecureCookies  bool          `yaml:"secure_cookies"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	Log            Log           `yaml:"log"`
	Storage        Storage       `yaml:"storage"`
	SkillOptions   []string      `yaml:"skill_options"`
	NoteTags       []string      `yaml:"note_tags"`
}

type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Storage struct {
	Driver     string `yaml:"driver" validate:"omitempty,oneof=sqlite redis memory"`
	SqlitePath string `yaml:"sqlite_path"`
	RedisURL   string `yaml:"redis_url"`
}

type Private struct {
	StorageKey string `yaml:"storage_key"` // base64, 32 bytes; empty disables sealing
}

const (
	DefaultPort       = 8081
	DefaultSqlitePath = "collabhub.db"
)

var (
	DefaultSkillOptions = []string{"GRAPHIC DESIGN", "WEB DESIGN", "SOFTWARE", "APPLICATION"}
	DefaultNoteTags     = []string{"AI & ML", "DBMS", "DSA", "Communications", "EEE"}
)

func (c *Config) StorageKey() string {
	return c.private.StorageKey
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// MustLoad reads public.yaml and, if present, private.yaml from configFolder,
// then applies .env and environment overrides.
func MustLoad(configFolder string) *Config {
	// .env is optional
	_ = godotenv.Load(path.Join(configFolder, ".env"))
	_ = godotenv.Load()

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	privatePath := path.Join(configFolder, "private.yaml")
	if _, err := os.Stat(privatePath); err == nil {
		mustLoadPath(privatePath, &private)
	}

	cfg := &Config{Public: public, private: private}
	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

// New builds a config without files; used by tests and embedding callers.
func New(public Public, storageKey string) *Config {
	cfg := &Config{Public: public, private: Private{StorageKey: storageKey}}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("COLLABHUB_API_URL"); v != "" {
		c.Public.ApiURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Public.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Public.Log.Level = v
	}
	if v := os.Getenv("COLLABHUB_REDIS_URL"); v != "" {
		c.Public.Storage.RedisURL = v
	}
	if v := os.Getenv("COLLABHUB_STORAGE_KEY"); v != "" {
		c.private.StorageKey = v
	}
}

func (c *Config) applyDefaults() {
	c.Public.ApiURL = strings.TrimRight(c.Public.ApiURL, "/")
	if c.Public.Port == 0 {
		c.Public.Port = DefaultPort
	}
	if c.Public.Storage.Driver == "" {
		c.Public.Storage.Driver = "sqlite"
	}
	if c.Public.Storage.SqlitePath == "" {
		c.Public.Storage.SqlitePath = DefaultSqlitePath
	}
	if len(c.Public.SkillOptions) == 0 {
		c.Public.SkillOptions = DefaultSkillOptions
	}
	if len(c.Public.NoteTags) == 0 {
		c.Public.NoteTags = DefaultNoteTags
	}
}

func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(c.Public); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Public.Storage.Driver == "redis" && c.Public.Storage.RedisURL == "" {
		return fmt.Errorf("invalid config: storage.redis_url is required for the redis driver")
	}
	return nil
}
