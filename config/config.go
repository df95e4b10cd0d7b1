// Package config holds the settings of the merkle-distributor command.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/util/validation/field"

	"github.com/bnb-chain/merkle-distributor/ss58"
)

// Environment variable names for the command's global flags
const (
	EnvNetwork     = "MERKLE_NETWORK"
	EnvWorkers     = "MERKLE_WORKERS"
	EnvVerbose     = "MERKLE_VERBOSE"
	EnvMetricsFile = "MERKLE_METRICS_FILE"
	EnvStore       = "MERKLE_STORE"
	EnvLevelDBPath = "MERKLE_LEVELDB_PATH"
	EnvRedisAddr   = "MERKLE_REDIS_ADDR"
	EnvNamespace   = "MERKLE_NAMESPACE"
)

type StoreType string

const (
	StoreMemory  StoreType = "memory"
	StoreLevelDB StoreType = "leveldb"
	StoreRedis   StoreType = "redis"
)

const (
	DefaultNetwork     = "bifrost"
	DefaultStore       = StoreLevelDB
	DefaultLevelDBPath = "merkle-ledger"
	DefaultNamespace   = "merkle"

	// MaxWorkers bounds the leaf hashing pool.
	MaxWorkers = 1024
)

type Config struct {
	// Address format of the balance file and of command arguments
	Network string `json:"network" yaml:"network"`
	// Leaf hashing goroutines, 0 hashes on the calling goroutine
	Workers int  `json:"workers" yaml:"workers"`
	Verbose bool `json:"verbose" yaml:"verbose"`
	// Prometheus text file written when the command exits
	MetricsFile string `json:"metrics_file,omitempty" yaml:"metrics_file,omitempty"`

	Store       StoreType `json:"store" yaml:"store"`
	LevelDBPath string    `json:"leveldb_path,omitempty" yaml:"leveldb_path,omitempty"`
	RedisAddr   string    `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	Namespace   string    `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

func Default() *Config {
	return &Config{
		Network:     DefaultNetwork,
		Store:       DefaultStore,
		LevelDBPath: DefaultLevelDBPath,
		Namespace:   DefaultNamespace,
	}
}

// LoadFile reads a YAML config over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Format resolves Network to an address format.
func (c *Config) Format() (ss58.Format, error) {
	return ss58.FormatByName(c.Network)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var allErrors field.ErrorList

	if c.Network == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("network"), "network is required"))
	} else if _, err := c.Format(); err != nil {
		allErrors = append(allErrors, field.NotSupported(field.NewPath("network"), c.Network, knownNetworks()))
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		allErrors = append(allErrors, field.Invalid(field.NewPath("workers"), c.Workers, "must be between 0 and 1024"))
	}

	switch c.Store {
	case StoreMemory:
	case StoreLevelDB:
		if c.LevelDBPath == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("leveldbPath"), "leveldbPath is required for the leveldb store"))
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			allErrors = append(allErrors, field.Required(field.NewPath("redisAddr"), "redisAddr is required for the redis store"))
		}
	default:
		allErrors = append(allErrors, field.NotSupported(field.NewPath("store"), c.Store,
			[]string{string(StoreMemory), string(StoreLevelDB), string(StoreRedis)}))
	}

	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

func knownNetworks() []string {
	return []string{
		ss58.Polkadot.Name,
		ss58.Kusama.Name,
		ss58.Bifrost.Name,
		ss58.Substrate.Name,
	}
}
