package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheBolt  = "bolt"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the application configuration read from config.toml.
// Flags override it.
//
//	format = "text"
//	max_num = 500
//	timeout = "30s"
//
//	[cache]
//	backend = "bolt"
//
//	[archive]
//	mongo_uri = "mongodb://localhost:27017"
//	database = "jugglesearch"
//
//	[server]
//	addr = ":8080"
type Config struct {
	// Format is the default output format.
	Format string `toml:"format"`
	// MaxNum and Timeout are limits applied to searches that set none.
	MaxNum  int           `toml:"max_num"`
	Timeout time.Duration `toml:"timeout"`

	Cache   CacheConfig   `toml:"cache"`
	Archive ArchiveConfig `toml:"archive"`
	Server  ServerConfig  `toml:"server"`
}

// CacheConfig selects the result cache.
type CacheConfig struct {
	Backend string `toml:"backend"`
	// Dir holds file and bolt caches; empty means the XDG cache directory.
	Dir string `toml:"dir"`
	// Addr is the Redis address.
	Addr string `toml:"addr"`
	// Prefix namespaces keys in a shared Redis.
	Prefix string `toml:"prefix"`
}

// ArchiveConfig points the --archive flag at a MongoDB database.
type ArchiveConfig struct {
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

// ServerConfig configures the serve command.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used without a config file.
func DefaultConfig() Config {
	return Config{
		Format: FormatText,
		Cache: CacheConfig{
			Backend: CacheFile,
			Addr:    "localhost:6379",
			Prefix:  appName + ":",
		},
		Archive: ArchiveConfig{
			MongoURI: "mongodb://localhost:27017",
			Database: appName,
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	switch c.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("config: unknown format %q", c.Format)
	}
	switch c.Cache.Backend {
	case CacheFile, CacheBolt, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("config: unknown cache backend %q", c.Cache.Backend)
	}
	if c.MaxNum < 0 || c.Timeout < 0 {
		return fmt.Errorf("config: limits must not be negative")
	}
	return nil
}
