package main

import (
	"os"

	sysmem "github.com/pbnjay/memory"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	bmd "github.com/bnb-chain/merkle-distributor"
	"github.com/bnb-chain/merkle-distributor/config"
	"github.com/bnb-chain/merkle-distributor/database"
	"github.com/bnb-chain/merkle-distributor/database/leveldb"
	"github.com/bnb-chain/merkle-distributor/database/memory"
	"github.com/bnb-chain/merkle-distributor/database/redis"
	"github.com/bnb-chain/merkle-distributor/genesis"
	"github.com/bnb-chain/merkle-distributor/logger"
	"github.com/bnb-chain/merkle-distributor/metrics"
	metricsProm "github.com/bnb-chain/merkle-distributor/metrics/prometheus"
	"github.com/bnb-chain/merkle-distributor/ss58"
)

const (
	minLevelDBCacheMB = 16
	maxLevelDBCacheMB = 512
	levelDBHandles    = 256
)

// session is what every command needs: validated settings, a logger and
// the metrics sink.
type session struct {
	cfg      *config.Config
	format   ss58.Format
	logger   *zap.Logger
	metrics  metrics.Metrics
	registry *prometheus.Registry
}

func newSession(c *cli.Context) (*session, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	format, err := cfg.Format()
	if err != nil {
		return nil, err
	}
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose, Output: c.App.ErrWriter})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}

	s := &session{
		cfg:     cfg,
		format:  format,
		logger:  l,
		metrics: metrics.Nop{},
	}
	if cfg.MetricsFile != "" {
		s.registry = prometheus.NewRegistry()
		s.metrics = metricsProm.NewCollector(s.registry)
	}
	return s, nil
}

// loadConfig layers flags and environment over the config file.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	path := c.String("config")
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}
	// without a file the flag defaults apply
	use := func(name string) bool { return path == "" || c.IsSet(name) }

	if use("network") {
		cfg.Network = c.String("network")
	}
	if use("workers") {
		cfg.Workers = c.Int("workers")
	}
	if use("verbose") {
		cfg.Verbose = c.Bool("verbose")
	}
	if use("metrics-file") {
		cfg.MetricsFile = c.String("metrics-file")
	}
	if use("store") {
		cfg.Store = config.StoreType(c.String("store"))
	}
	if use("leveldb-path") {
		cfg.LevelDBPath = c.String("leveldb-path")
	}
	if use("redis-addr") {
		cfg.RedisAddr = c.String("redis-addr")
	}
	if use("namespace") {
		cfg.Namespace = c.String("namespace")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// close flushes the logger and writes the metrics file.
func (s *session) close() error {
	_ = s.logger.Sync()
	if s.registry == nil {
		return nil
	}
	return prometheus.WriteToTextfile(s.cfg.MetricsFile, s.registry)
}

func (s *session) treeOptions() []bmd.Option {
	return []bmd.Option{
		bmd.Workers(s.cfg.Workers),
		bmd.EnableMetrics(s.metrics),
	}
}

func (s *session) loadBalances(path string) (*genesis.Config, error) {
	if path == "" {
		return nil, errors.New("balance file argument is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return genesis.LoadDir(path)
	}
	return genesis.LoadFile(path)
}

// buildTree loads the balances at path and builds their tree.
func (s *session) buildTree(path string, checkDuplicates bool) (*bmd.MerkleTree, []bmd.Record, error) {
	balances, err := s.loadBalances(path)
	if err != nil {
		return nil, nil, err
	}
	if checkDuplicates {
		dups, err := balances.Duplicates(s.format)
		if err != nil {
			return nil, nil, err
		}
		if len(dups) > 0 {
			return nil, nil, errors.Wrapf(genesis.ErrDuplicateAddress, "%v", dups)
		}
	}
	records, err := balances.Records(s.format)
	if err != nil {
		return nil, nil, err
	}
	tree, err := bmd.BuildFromRecords(records, s.treeOptions()...)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Info("tree built",
		zap.String("file", path),
		zap.Int("leaves", tree.Size()),
		zap.Int("depth", tree.Depth()),
		zap.String("root", tree.Root().Hex()),
		zap.String("total", balances.Total().Dec()))
	return tree, records, nil
}

// openStore opens the ledger's backing store.
func (s *session) openStore() (database.Store, error) {
	switch s.cfg.Store {
	case config.StoreMemory:
		s.logger.Warn("memory store: ledger state is lost on exit")
		return memory.NewMemoryDB(), nil
	case config.StoreLevelDB:
		cache := levelDBCacheMB()
		s.logger.Debug("opening leveldb", zap.String("path", s.cfg.LevelDBPath), zap.Int("cacheMB", cache))
		return leveldb.New(s.cfg.LevelDBPath, s.cfg.Namespace, cache, levelDBHandles, false)
	case config.StoreRedis:
		s.logger.Debug("connecting to redis", zap.String("addr", s.cfg.RedisAddr))
		opts := []redis.Option{redis.WithNamespace(s.cfg.Namespace)}
		if s.cfg.Verbose {
			opts = append(opts, redis.WithHooks(redis.NewLogHook(s.logger)))
		}
		return redis.New(&redis.RedisConfig{Addr: s.cfg.RedisAddr}, opts...)
	default:
		return nil, errors.Errorf("unknown store %q", s.cfg.Store)
	}
}

// levelDBCacheMB gives leveldb 1/64 of physical memory within fixed bounds.
func levelDBCacheMB() int {
	mb := int(sysmem.TotalMemory() / 64 / (1 << 20))
	if mb < minLevelDBCacheMB {
		return minLevelDBCacheMB
	}
	if mb > maxLevelDBCacheMB {
		return maxLevelDBCacheMB
	}
	return mb
}
