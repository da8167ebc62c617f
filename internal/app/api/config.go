package api

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.temporal.io/sdk/client"
)

// Storage backends accepted by storage.backend.
const (
	BackendAuto     = "auto"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// envPrefix scopes layered settings, e.g. PETCARE_STORAGE__SQLITE_PATH sets storage.sqlite_path.
const envPrefix = "PETCARE_"

// Config carries the layered settings for the API and worker processes.
type Config struct {
	Port      string          `koanf:"port"`
	Storage   StorageConfig   `koanf:"storage"`
	Adoptions AdoptionsConfig `koanf:"adoptions"`
	Temporal  TemporalConfig  `koanf:"temporal"`
}

type StorageConfig struct {
	// Backend is auto, postgres, sqlite or memory. Auto tries postgres, then sqlite, then memory.
	Backend       string `koanf:"backend"`
	PostgresDSN   string `koanf:"postgres_dsn"`
	SQLitePath    string `koanf:"sqlite_path"`
	CollectionKey string `koanf:"collection_key"`
}

type AdoptionsConfig struct {
	// EnforceOwnership rejects reminders for pets the user has not adopted.
	EnforceOwnership bool `koanf:"enforce_ownership"`
}

type TemporalConfig struct {
	Address   string `koanf:"address"`
	Namespace string `koanf:"namespace"`
	Disabled  bool   `koanf:"disabled"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"port": "8080",
		"storage": map[string]interface{}{
			"backend":        BackendAuto,
			"postgres_dsn":   "",
			"sqlite_path":    "",
			"collection_key": "petcare.reminders",
		},
		"adoptions": map[string]interface{}{
			"enforce_ownership": true,
		},
		"temporal": map[string]interface{}{
			"address":   client.DefaultHostPort,
			"namespace": client.DefaultNamespace,
			"disabled":  false,
		},
	}
}

// LoadConfig layers defaults, the YAML file named by PETCARE_CONFIG, PETCARE_* variables and
// finally the plain PORT, POSTGRES_DSN and TEMPORAL_* variables, then validates the result.
func LoadConfig() (Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := strings.TrimSpace(os.Getenv("PETCARE_CONFIG")); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	overrides := map[string]string{
		"PORT":               "port",
		"POSTGRES_DSN":       "storage.postgres_dsn",
		"TEMPORAL_ADDRESS":   "temporal.address",
		"TEMPORAL_NAMESPACE": "temporal.namespace",
	}
	for name, key := range overrides {
		if value := strings.TrimSpace(os.Getenv(name)); value != "" {
			_ = k.Set(key, value)
		}
	}
	if raw, ok := os.LookupEnv("TEMPORAL_DISABLED"); ok {
		_ = k.Set("temporal.disabled", isTruthy(raw))
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Storage.PostgresDSN = strings.TrimSpace(cfg.Storage.PostgresDSN)
	cfg.Storage.SQLitePath = strings.TrimSpace(cfg.Storage.SQLitePath)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Backend {
	case BackendAuto, BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return fmt.Errorf("storage.backend postgres requires storage.postgres_dsn or POSTGRES_DSN")
		}
	case BackendSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("storage.backend sqlite requires storage.sqlite_path")
		}
	default:
		return fmt.Errorf("storage.backend must be one of auto, postgres, sqlite, memory, got %q", c.Storage.Backend)
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port must not be empty")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envKey(name string) string {
	name = strings.TrimPrefix(name, envPrefix)
	return strings.ReplaceAll(strings.ToLower(name), "__", ".")
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
