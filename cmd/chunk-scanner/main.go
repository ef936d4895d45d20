// Command chunk-scanner walks every chunk of an Anvil world and reports
// records that cannot be read or decoded. It is meant for integrity checks
// of worlds received from untrusted sources or recovered from failing disks.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/overworld-dev/anvil-node/cmd/chunk-scanner/config"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/anvil"
	"github.com/overworld-dev/anvil-node/pkg/local_chunk_storage/chunk"
	"github.com/overworld-dev/anvil-node/pkg/metrics"
	"github.com/overworld-dev/anvil-node/pkg/util"
	httputil "github.com/overworld-dev/anvil-node/pkg/util/http"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const (
	defaultMaxOpenRegions = 64
	defaultRetention      = "5m"
	defaultWorkers        = 4
)

func main() {
	cfgPath := flag.String("config", "", "Path to the scanner's YAML configuration file")

	flag.Parse()

	var opts []config.Option
	if *cfgPath != "" {
		opts = append(opts, config.WithConfigFile(*cfgPath))
	}

	appCfg := config.New(opts...)

	worldRoot := config.String(appCfg.Sub("world"), "root", "")
	if worldRoot == "" {
		log.Fatal("missing world.root in configuration")
	}

	storageCfg := appCfg.Sub("storage")
	maxOpen := config.Int(storageCfg, "max_open_regions", defaultMaxOpenRegions)
	retention := config.Duration(storageCfg, "retention", mustDuration(defaultRetention))

	var logger *zap.Logger
	var err error

	if config.Bool(appCfg.Sub("logger"), "debug", false) {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatal("create logger: ", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := metrics.NewStorageMetrics()

	if endpoint := config.String(appCfg.Sub("metrics"), "endpoint", ""); endpoint != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		srv := httputil.New(endpoint, mux)
		defer func() { _ = srv.Shutdown() }()

		go func() {
			logger.Info("serving metrics", zap.String("endpoint", endpoint))

			if err := srv.Serve(); err != nil {
				logger.Error("metrics endpoint failed", zap.Error(err))
			}
		}()
	}

	store := anvil.New(worldRoot, maxOpen, retention,
		anvil.WithLogger(logger),
		anvil.WithMetrics(m),
	)
	defer store.Close()

	pool, err := util.NewWorkerPool(config.Int(appCfg.Sub("scanner"), "workers", defaultWorkers))
	if err != nil {
		log.Fatal("create worker pool: ", err)
	}
	defer pool.Release()

	var scanned, faulty atomic.Uint64

	var prm anvil.IterationPrm
	prm.WithWorkerPool(pool)
	prm.WithHandler(func(pos chunk.Pos, _ *chunk.Chunk) error {
		scanned.Inc()
		return ctx.Err()
	})
	prm.WithFaultHandler(func(pos chunk.Pos, err error) error {
		faulty.Inc()

		logger.Warn("broken chunk record",
			zap.Stringer("chunk", pos),
			zap.Error(err),
		)

		return ctx.Err()
	})

	if err := store.Iterate(prm); err != nil {
		logger.Fatal("scan aborted", zap.Error(err))
	}

	logger.Info("world scan finished",
		zap.Uint64("chunks", scanned.Load()),
		zap.Uint64("broken", faulty.Load()),
	)

	if faulty.Load() > 0 {
		os.Exit(2)
	}
}

func mustDuration(s string) (d time.Duration) {
	d, err := time.ParseDuration(s)
	if err != nil {
		panic(err)
	}

	return d
}
