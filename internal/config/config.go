package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/honeycarbs/jobboard/internal/secrets"
)

const (
	RemotePostgREST = "postgrest"
	RemotePostgres  = "postgres"

	StorageFile   = "file"
	StorageSQLite = "sqlite"
	StorageNeo4j  = "neo4j"
	StorageMemory = "memory"
)

// Config contains runtime settings for the server
type Config struct {
	LogLevel    string   `yaml:"log_level"`
	LogFormat   string   `yaml:"log_format"` // json or console
	Host        string   `yaml:"host"`       // default 0.0.0.0
	Port        string   `yaml:"port"`       // default 8080
	CORSOrigins []string `yaml:"cors_origins"`
	PageSize    int      `yaml:"page_size"`

	Remote struct {
		Backend     string `yaml:"backend"`
		SupabaseURL string `yaml:"supabase_url"`
		// AnonKey is read from the environment or the OS keyring, never from file
		AnonKey           string  `yaml:"-"`
		DatabaseURL       string  `yaml:"database_url"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
	} `yaml:"remote"`

	Storage struct {
		Backend string `yaml:"backend"`
		DataDir string `yaml:"data_dir"`
	} `yaml:"storage"`

	Neo4j struct {
		URI      string `yaml:"uri"`
		Username string `yaml:"username"`
		Password string `yaml:"-"`
	} `yaml:"neo4j"`

	Sheets struct {
		CredentialsPath string `yaml:"credentials_path"`
	} `yaml:"sheets"`
}

// anonKeyLookup resolves the anon key when the environment has none
var anonKeyLookup = secrets.GetAnonKey

// Default returns the configuration used before any file or env is applied
func Default() Config {
	cfg := Config{
		LogLevel:    "info",
		LogFormat:   "json",
		Host:        "0.0.0.0",
		Port:        "8080",
		CORSOrigins: []string{"*"},
		PageSize:    50,
	}
	cfg.Remote.Backend = RemotePostgREST
	cfg.Remote.RequestsPerSecond = 10
	cfg.Storage.Backend = StorageFile
	cfg.Storage.DataDir = "~/.jobboard"
	return cfg
}

// Load populates config from .env, an optional YAML file named by
// JOBBOARD_CONFIG, and environment variables, in increasing precedence
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	cfg := Default()

	if path := os.Getenv("JOBBOARD_CONFIG"); path != "" {
		if err := overlayFile(&cfg, path); err != nil {
			return cfg, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if cfg.Remote.Backend == RemotePostgREST && cfg.Remote.AnonKey == "" && cfg.Remote.SupabaseURL != "" {
		if key, err := anonKeyLookup(cfg.Remote.SupabaseURL); err == nil {
			cfg.Remote.AnonKey = key
		}
	}

	dir, err := homedir.Expand(cfg.Storage.DataDir)
	if err != nil {
		return cfg, fmt.Errorf("config: expand data dir: %w", err)
	}
	cfg.Storage.DataDir = dir

	return cfg, cfg.Validate()
}

func overlayFile(cfg *Config, path string) error {
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config: expand %s: %w", path, err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	setString(&cfg.LogLevel, "LOG_LEVEL")
	setString(&cfg.LogFormat, "LOG_FORMAT")
	setString(&cfg.Host, "HOST")
	setString(&cfg.Port, "PORT")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	setString(&cfg.Remote.Backend, "REMOTE_BACKEND")
	setString(&cfg.Remote.SupabaseURL, "SUPABASE_URL")
	setString(&cfg.Remote.AnonKey, "SUPABASE_ANON_KEY")
	setString(&cfg.Remote.DatabaseURL, "DATABASE_URL")

	setString(&cfg.Storage.Backend, "STORAGE_BACKEND")
	setString(&cfg.Storage.DataDir, "DATA_DIR")

	setString(&cfg.Neo4j.URI, "NEO4J_URI")
	setString(&cfg.Neo4j.Username, "NEO4J_USERNAME")
	setString(&cfg.Neo4j.Password, "NEO4J_PASSWORD")

	setString(&cfg.Sheets.CredentialsPath, "GOOGLE_SHEETS_CREDENTIALS_PATH")

	var errs *multierror.Error
	if v := os.Getenv("PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("PAGE_SIZE: %w", err))
		} else {
			cfg.PageSize = n
		}
	}
	if v := os.Getenv("REMOTE_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("REMOTE_RPS: %w", err))
		} else {
			cfg.Remote.RequestsPerSecond = f
		}
	}
	return errs.ErrorOrNil()
}

// Validate reports every problem with cfg at once
func (c Config) Validate() error {
	var errs *multierror.Error
	var missing []string

	switch c.Remote.Backend {
	case RemotePostgREST:
		if c.Remote.SupabaseURL == "" {
			missing = append(missing, "SUPABASE_URL")
		}
		if c.Remote.AnonKey == "" {
			missing = append(missing, "SUPABASE_ANON_KEY")
		}
	case RemotePostgres:
		if c.Remote.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		errs = multierror.Append(errs, fmt.Errorf("REMOTE_BACKEND must be %s or %s, got %q", RemotePostgREST, RemotePostgres, c.Remote.Backend))
	}

	switch c.Storage.Backend {
	case StorageFile, StorageSQLite:
		if c.Storage.DataDir == "" {
			missing = append(missing, "DATA_DIR")
		}
	case StorageNeo4j:
		if c.Neo4j.URI == "" {
			missing = append(missing, "NEO4J_URI")
		}
		if c.Neo4j.Username == "" {
			missing = append(missing, "NEO4J_USERNAME")
		}
		if c.Neo4j.Password == "" {
			missing = append(missing, "NEO4J_PASSWORD")
		}
	case StorageMemory:
	default:
		errs = multierror.Append(errs, fmt.Errorf("STORAGE_BACKEND must be one of file, sqlite, neo4j, memory, got %q", c.Storage.Backend))
	}

	if len(missing) > 0 {
		errs = multierror.Append(errs, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", ")))
	}
	if c.PageSize <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("PAGE_SIZE must be positive, got %d", c.PageSize))
	}
	if c.Remote.RequestsPerSecond < 0 {
		errs = multierror.Append(errs, fmt.Errorf("REMOTE_RPS must not be negative"))
	}
	return errs.ErrorOrNil()
}

// Addr is the host:port the server listens on
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
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
