// Command dashboard serves the read-only HTTP API over the hotel's record
// sets: the aggregate summary, room and booking views, and prometheus
// metrics. It never mutates state; the operator console owns writes.
package main

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	server "bluewhale/internal/adapters/http_server"
	"bluewhale/internal/adapters/observability"
	redisad "bluewhale/internal/adapters/redis"
	"bluewhale/internal/app"
	"bluewhale/internal/domain"
	"bluewhale/internal/shared"
	"bluewhale/internal/storage/flatfile"
)

func main() {
	dataDir := pflag.String("data-dir", "", "record set directory (overrides DATA_DIR)")
	addr := pflag.String("addr", "", "listen address (overrides HTTP_ADDR)")
	pflag.Parse()

	cfg := shared.Load()
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	store, err := flatfile.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open store failed")
	}
	reg, err := app.Open(store, cfg.DataDir, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("open registry failed")
	}
	log.Info().Str("dir", cfg.DataDir).Int("rooms", len(reg.Rooms())).Msg("registry loaded")

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, "bluewhale")
		log.Info().Str("addr", cfg.RedisAddr).Msg("summary cache enabled")
	}

	srv := server.New(cfg.RateRPS)
	preg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(preg))
	srv.MountHandlers(&server.Handlers{Reg: reg, Cache: cache, CacheTTL: cfg.CacheTTL})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("dashboard listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
