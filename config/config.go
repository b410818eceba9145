package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

// Image extraction modes. Pattern matching is the default.
const (
	ImageExtractionPattern = "pattern"
	ImageExtractionMarkup  = "markup"
)

type AppConfig struct {
	Server          ServerConfig  `yaml:"server"`
	Logging         LoggingConfig `yaml:"logging"`
	Mongo           MongoConfig   `yaml:"mongo"`
	ImageExtraction string        `yaml:"image_extraction"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// MongoConfig describes how to reach the blog post collection.
// User and Password only come from the environment (DB_USER / DB_PASS).
type MongoConfig struct {
	// URI, when set, is used verbatim and the scheme/host/credentials are ignored.
	URI            string        `yaml:"uri"`
	Scheme         string        `yaml:"scheme"`
	Host           string        `yaml:"host"`
	Database       string        `yaml:"database"`
	Collection     string        `yaml:"collection"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	User           string        `yaml:"-"`
	Password       string        `yaml:"-"`
}

// ConnectionURI returns the connection string with credentials interpolated.
func (m MongoConfig) ConnectionURI() string {
	if m.URI != "" {
		return m.URI
	}
	u := url.URL{
		Scheme: m.Scheme,
		Host:   m.Host,
		Path:   "/",
	}
	if m.User != "" || m.Password != "" {
		u.User = url.UserPassword(m.User, m.Password)
	}
	return u.String()
}

var (
	initOnce sync.Once
	config   *AppConfig
)

// Default returns the configuration used when no config.yaml is present.
func Default() AppConfig {
	return AppConfig{
		Server:  ServerConfig{Port: "5000"},
		Logging: LoggingConfig{Level: "info"},
		Mongo: MongoConfig{
			Scheme:         "mongodb+srv",
			Host:           "cluster0.djzcyyl.mongodb.net",
			Database:       "blogDB",
			Collection:     "blogposts",
			ConnectTimeout: 10 * time.Second,
		},
		ImageExtraction: ImageExtractionPattern,
	}
}

// InitApp loads .env, then config.yaml (optional), then environment overrides.
// Only the first call loads; later calls are no-ops.
func InitApp() {
	initOnce.Do(func() {
		c, err := Load(GetBasePath())
		if err != nil {
			panic(err)
		}
		config = &c
	})
}

// Load builds an AppConfig rooted at baseDir without touching the package state.
func Load(baseDir string) (AppConfig, error) {
	// a missing .env is normal outside local development
	_ = godotenv.Load(filepath.Join(baseDir, ENV_FILE))

	c := Default()
	data, err := os.ReadFile(filepath.Join(baseDir, CONFIG_FILE))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return AppConfig{}, fmt.Errorf("parse %s: %w", CONFIG_FILE, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return AppConfig{}, fmt.Errorf("read %s: %w", CONFIG_FILE, err)
	}

	applyEnv(&c)
	c.ImageExtraction = strings.ToLower(strings.TrimSpace(c.ImageExtraction))

	if err := c.validate(); err != nil {
		return AppConfig{}, err
	}
	return c, nil
}

func applyEnv(c *AppConfig) {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	c.Mongo.User = os.Getenv("DB_USER")
	c.Mongo.Password = os.Getenv("DB_PASS")
}

func (c AppConfig) validate() error {
	switch c.ImageExtraction {
	case ImageExtractionPattern, ImageExtractionMarkup:
	default:
		return fmt.Errorf("unknown image_extraction %q (want %q or %q)", c.ImageExtraction, ImageExtractionPattern, ImageExtractionMarkup)
	}
	if c.Mongo.Database == "" || c.Mongo.Collection == "" {
		return errors.New("mongo.database and mongo.collection must be set")
	}
	return nil
}

func GetConfig() AppConfig {
	InitApp()
	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd
}
