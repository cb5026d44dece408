package shared

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type SiteConfig struct {
	Port                  int    `yaml:"port"`
	Environment           string `yaml:"environment"`
	Store                 string `yaml:"store"`
	DBPath                string `yaml:"db_path"`
	StaticDir             string `yaml:"static_dir"`
	PassPhrase            string `yaml:"pass_phrase"`
	ContributionPercent   int64  `yaml:"contribution_percent"`
	MinPointsCreateCircle int64  `yaml:"min_points_create_circle"`
	LogLevel              string `yaml:"log_level"`
}

func DefaultSiteConfig() *SiteConfig {
	return &SiteConfig{
		Port:                  4567,
		Environment:           EnvProduction,
		Store:                 StoreSQLite,
		DBPath:                "./data/agartha.db",
		ContributionPercent:   10,
		MinPointsCreateCircle: 50,
		LogLevel:              "info",
	}
}

// LoadSiteConfig layers an optional YAML file and then the environment on top
// of the defaults.
func LoadSiteConfig(path string) (*SiteConfig, error) {
	c := DefaultSiteConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

func (c *SiteConfig) applyEnv() error {
	strs := map[string]*string{
		"A_ENVIRONMENT":      &c.Environment,
		"AGARTHA_STORE":      &c.Store,
		"AGARTHA_DB_PATH":    &c.DBPath,
		"AGARTHA_STATIC_DIR": &c.StaticDir,
		"A_PASS_PHRASE":      &c.PassPhrase,
		"AGARTHA_LOG_LEVEL":  &c.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Port = port
	}
	ints := map[string]*int64{
		"A_CONTRIBUTION_PERCENT":     &c.ContributionPercent,
		"A_MIN_POINTS_CREATE_CIRCLE": &c.MinPointsCreateCircle,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	return nil
}

func (c *SiteConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	c.Store = strings.ToLower(c.Store)
	if c.Store != StoreSQLite && c.Store != StoreMemory {
		return fmt.Errorf("unknown store %q", c.Store)
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		return fmt.Errorf("db_path is required for the sqlite store")
	}
	if c.ContributionPercent < 0 || c.ContributionPercent > 100 {
		return fmt.Errorf("contribution_percent %d out of range", c.ContributionPercent)
	}
	return nil
}

func (c *SiteConfig) Development() bool {
	return c.Environment == EnvDevelopment
}

func (c *SiteConfig) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
