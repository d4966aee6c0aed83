package config

import (
	"errors"
	"fmt"
	"os"
	"route-planner-service/internal/domain"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	StateMemory   = "memory"
	StateRedis    = "redis"
	StatePostgres = "postgres"
)

// DefaultHosts is the routing host priority list used when none is configured.
var DefaultHosts = []string{
	"https://router.project-osrm.org",
	"https://routing.openstreetmap.de",
	"https://osrm.kk.my.id",
}

// DefaultSnapZone covers Binh Thanh district, Ho Chi Minh City.
var DefaultSnapZone = domain.BoundingBox{West: 106.677, East: 106.740, South: 10.784, North: 10.858}

type Routing struct {
	Hosts      []string           `yaml:"hosts"`
	// Answers nearest-road lookups; defaults to the first host.
	SnapHost   string             `yaml:"snap_host"`
	Profile    string             `yaml:"profile"`
	Timeout    time.Duration      `yaml:"timeout"`
	MaxRetries int                `yaml:"max_retries"`
	RateLimit  float64            `yaml:"rate_limit"`
	SnapZone   domain.BoundingBox `yaml:"snap_zone"`
}

type Config struct {
	Port         string  `yaml:"port"`
	DatabaseURL  string  `yaml:"database_url"`
	RedisURL     string  `yaml:"redis_url"`
	StateBackend string  `yaml:"state_backend"`
	SeedPath     string  `yaml:"seed_path"`
	Routing      Routing `yaml:"routing"`
}

// Get returns the environment value for key, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func Default() Config {
	return Config{
		Port:         "8080",
		StateBackend: StateMemory,
		SeedPath:     "data/seeds/orders.json",
		Routing: Routing{
			Hosts:      append([]string(nil), DefaultHosts...),
			Profile:    "driving",
			Timeout:    8 * time.Second,
			MaxRetries: 2,
			SnapZone:   DefaultSnapZone,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named
// by ROUTER_CONFIG, and environment variables, in increasing precedence.
func Load() (Config, error) {
	cfg := Default()

	if path := Get("ROUTER_CONFIG", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: read %q: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("load config: parse %q: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() error {
	c.Port = Get("PORT", c.Port)
	c.DatabaseURL = Get("DATABASE_URL", c.DatabaseURL)
	c.RedisURL = Get("REDIS_URL", c.RedisURL)
	c.StateBackend = Get("STATE_BACKEND", c.StateBackend)
	c.SeedPath = Get("SEED_PATH", c.SeedPath)
	c.Routing.SnapHost = Get("OSRM_SNAP_HOST", c.Routing.SnapHost)

	if v := Get("OSRM_HOSTS", ""); v != "" {
		c.Routing.Hosts = splitList(v)
	}
	if v := Get("OSRM_TIMEOUT", ""); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("load config: OSRM_TIMEOUT: %w", err)
		}
		c.Routing.Timeout = d
	}
	if v := Get("OSRM_RETRIES", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("load config: OSRM_RETRIES: %w", err)
		}
		c.Routing.MaxRetries = n
	}
	if v := Get("OSRM_RATE_LIMIT", ""); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("load config: OSRM_RATE_LIMIT: %w", err)
		}
		c.Routing.RateLimit = f
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Validate() error {
	var errs []error

	if len(c.Routing.Hosts) == 0 {
		errs = append(errs, errors.New("at least one routing host is required"))
	}
	if c.Routing.Timeout <= 0 {
		errs = append(errs, errors.New("routing timeout must be positive"))
	}
	if c.Routing.MaxRetries < 1 || c.Routing.MaxRetries > 5 {
		errs = append(errs, errors.New("routing max_retries must be between 1 and 5"))
	}
	if c.Routing.RateLimit < 0 {
		errs = append(errs, errors.New("routing rate_limit must not be negative"))
	}

	switch c.StateBackend {
	case StateMemory:
	case StateRedis:
		if c.RedisURL == "" {
			errs = append(errs, errors.New("REDIS_URL is required for the redis state backend"))
		}
	case StatePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres state backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown state backend %q", c.StateBackend))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// SnapHostOrDefault returns the host used for nearest-road lookups.
func (r Routing) SnapHostOrDefault() string {
	if r.SnapHost != "" {
		return r.SnapHost
	}
	if len(r.Hosts) > 0 {
		return r.Hosts[0]
	}
	return ""
}
