package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gym-admin-backend/internal/membership"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Push       PushConfig       `yaml:"push"`
	Notifier   NotifierConfig   `yaml:"notifier"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
	Branches   []Branch         `yaml:"branches"`
}

// Branch is a physical gym location. Branches are static configuration,
// loaded once at startup and never mutated; client and check-in records
// reference them by ID.
type Branch struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
	// TermPolicy picks the plan family this branch sells: "days" for short
	// passes, "months" for long calendar-month terms.
	TermPolicy membership.TermPolicy       `yaml:"term_policy"`
	Prices     map[membership.Plan]float64 `yaml:"prices"`
}

// PriceFor resolves the charge for a plan from this branch's price table.
func (b *Branch) PriceFor(plan membership.Plan) (float64, error) {
	price, ok := b.Prices[plan]
	if !ok {
		return 0, fmt.Errorf("branch %s has no price for plan %q", b.ID, plan)
	}
	return price, nil
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// NotifierConfig controls the periodic membership-expiry sweep.
type NotifierConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RequestIPHeader string   `yaml:"request_ip_header"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if len(cfg.Branches) == 0 {
		return nil, fmt.Errorf("at least one branch must be configured")
	}

	seen := make(map[string]bool, len(cfg.Branches))
	for i := range cfg.Branches {
		b := &cfg.Branches[i]
		if b.ID == "" {
			return nil, fmt.Errorf("branch %d has no id", i)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate branch id %q", b.ID)
		}
		seen[b.ID] = true

		if b.TermPolicy == "" {
			b.TermPolicy = membership.TermPolicyDays
		}
		if !b.TermPolicy.Valid() {
			return nil, fmt.Errorf("branch %s: unknown term policy %q", b.ID, b.TermPolicy)
		}
		for _, plan := range b.TermPolicy.Plans() {
			if _, ok := b.Prices[plan]; !ok {
				return nil, fmt.Errorf("branch %s: missing price for plan %q", b.ID, plan)
			}
		}
	}

	if cfg.Notifier.IntervalSeconds <= 0 {
		cfg.Notifier.IntervalSeconds = 3600
	}
	cfg.Notifier.Interval = time.Duration(cfg.Notifier.IntervalSeconds) * time.Second

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}

	return &cfg, nil
}

// Branch returns the configured branch with the given ID.
func (c *Config) Branch(id string) (*Branch, bool) {
	for i := range c.Branches {
		if c.Branches[i].ID == id {
			return &c.Branches[i], true
		}
	}
	return nil, false
}
