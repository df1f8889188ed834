package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/worldguard/internal/data"
	"github.com/udisondev/worldguard/internal/message/handler/verify"
)

// EnvPath names the environment variable that overrides the config path.
const EnvPath = "WORLDGUARD_CONFIG"

// ErrInvalidConfig is returned when the config document has an unexpected shape.
var ErrInvalidConfig = errors.New("invalid config")

// Spawn store drivers.
const (
	DriverNone     = "none"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// WorldServer holds all configuration for the world server.
type WorldServer struct {
	LogLevel string `yaml:"log_level"`

	// Tick loop
	TickInterval    time.Duration `yaml:"tick_interval"`
	ActionQueueSize int           `yaml:"action_queue_size"`

	Definitions Definitions `yaml:"definitions"`
	Interaction Interaction `yaml:"interaction"`
	SpawnStore  SpawnStore  `yaml:"spawn_store"`

	// Services are constructed and started in this order.
	Services []string `yaml:"services"`
}

// Definitions holds paths to definition files. A ".zst" suffix means zstd-compressed.
type Definitions struct {
	Objects string `yaml:"objects"`
	Npcs    string `yaml:"npcs"`
	Items   string `yaml:"items"`
}

// Sources converts the paths to loader input.
func (d Definitions) Sources() data.Sources {
	return data.Sources{Objects: d.Objects, Npcs: d.Npcs, Items: d.Items}
}

// Interaction holds the verification limits, in tiles.
type Interaction struct {
	ObjectRadius    int32 `yaml:"object_radius"`
	NpcRadius       int32 `yaml:"npc_radius"`
	ItemRadius      int32 `yaml:"item_radius"`
	MaxWalkSteps    int   `yaml:"max_walk_steps"`
	AllowCrossPlane bool  `yaml:"allow_cross_plane"`
}

// Policy converts the limits to a verification policy.
func (i Interaction) Policy() verify.Policy {
	return verify.Policy{
		ObjectRadius:    i.ObjectRadius,
		NpcRadius:       i.NpcRadius,
		ItemRadius:      i.ItemRadius,
		MaxWalkSteps:    i.MaxWalkSteps,
		AllowCrossPlane: i.AllowCrossPlane,
	}
}

// SpawnStore selects where object spawns are loaded from.
type SpawnStore struct {
	Driver string `yaml:"driver"`
	// DSN is the sqlite file path, or a postgres URL overriding Database.
	DSN      string         `yaml:"dsn"`
	Database DatabaseConfig `yaml:"database"`
}

// PostgresDSN returns DSN if set, otherwise the DSN built from Database.
func (s SpawnStore) PostgresDSN() string {
	if s.DSN != "" {
		return s.DSN
	}
	return s.Database.DSN()
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultWorldServer returns WorldServer config with sensible defaults.
func DefaultWorldServer() WorldServer {
	return WorldServer{
		LogLevel:        "info",
		TickInterval:    600 * time.Millisecond,
		ActionQueueSize: 4096,
		Definitions: Definitions{
			Objects: "data/objects.yaml",
			Npcs:    "data/npcs.yaml",
			Items:   "data/items.yaml",
		},
		Interaction: Interaction{
			ObjectRadius: verify.DefaultObjectRadius,
			NpcRadius:    verify.DefaultNpcRadius,
			ItemRadius:   verify.DefaultItemRadius,
			MaxWalkSteps: verify.DefaultMaxWalkSteps,
		},
		SpawnStore: SpawnStore{
			Driver: DriverNone,
			Database: DatabaseConfig{
				Host:     "127.0.0.1",
				Port:     5432,
				User:     "worldguard",
				Password: "worldguard",
				DBName:   "worldguard",
				SSLMode:  "disable",
			},
		},
		Services: []string{"spawn", "ticker"},
	}
}

// Path returns the config path from the environment, or fallback.
func Path(fallback string) string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return fallback
}

// LoadWorldServer loads world server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadWorldServer(path string) (WorldServer, error) {
	cfg := DefaultWorldServer()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := validate(raw); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.check(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// check covers what the schema cannot express on the decoded values.
func (c WorldServer) check() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick_interval must be positive, got %s", ErrInvalidConfig, c.TickInterval)
	}
	if c.ActionQueueSize <= 0 {
		return fmt.Errorf("%w: action_queue_size must be positive, got %d", ErrInvalidConfig, c.ActionQueueSize)
	}
	return nil
}

// validate checks the raw document against the embedded schema.
// The YAML tree is round-tripped through JSON so the validator sees JSON types.
func validate(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if doc == nil {
		return nil
	}

	j, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	var v any
	if err := json.Unmarshal(j, &v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
