// cmd/web/main.go
//
// Vitrine – HTTP entry point.
//
// Boot sequence
// -------------
//
//  1. Load env vars (jail-wide file → .env fallback).
//
//  2. Start daily rotating logger (tees to console when running in a TTY).
//
//  3. Load config (YAML + env overlays, Vault-resolved secrets).
//
//  4. Open the MySQL pool and log the registered-business count.
//
//  5. Open the GeoIP database when configured; country attribution is
//     skipped otherwise.
//
//  6. Wire stores → recorder → service → chi route tree, expose the
//     Prometheus /metrics endpoint inside the same tree.
//
//  7. Wrap with security-header middleware, plus ForceHTTPS when the
//     deployment asks for it, and serve with hardened timeouts.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/oschwald/geoip2-golang"

	"github.com/yanizio/vitrine/internal/analytics"
	"github.com/yanizio/vitrine/internal/business"
	"github.com/yanizio/vitrine/internal/config"
	"github.com/yanizio/vitrine/internal/database"
	"github.com/yanizio/vitrine/internal/logger"
	"github.com/yanizio/vitrine/internal/middleware"
	"github.com/yanizio/vitrine/internal/server"
	"github.com/yanizio/vitrine/internal/site"
	"github.com/yanizio/vitrine/internal/user"
	"github.com/yanizio/vitrine/internal/web"
)

const serverEnvPath = "/usr/local/etc/vitrine/global.env"

// loadEnv prefers the jail-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	ctx := context.Background()

	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Config ──────────────────────────────────────────────────────
	//
	cfg, err := config.Load(ctx)
	if err != nil {
		logOut.Fatalw("load config", "err", err)
	}

	//
	// ── 2.  Database ────────────────────────────────────────────────────
	//
	logOut.Infow("connecting to database")
	db, err := database.Open(cfg.DSNString())
	if err != nil {
		logOut.Fatalw("connect database", "err", err)
	}
	defer db.Close()

	// Log registered-business count as an early sanity check.
	var registered int
	_ = db.Get(&registered, `SELECT COUNT(*) FROM businesses`)
	logOut.Infow("database online", "businesses", registered)

	//
	// ── 3.  GeoIP (optional) ────────────────────────────────────────────
	//
	var geo *geoip2.Reader
	if cfg.Analytics.GeoIPDB != "" {
		geo, err = geoip2.Open(cfg.Analytics.GeoIPDB)
		if err != nil {
			logOut.Warnw("geoip open failed, country attribution disabled",
				"file", cfg.Analytics.GeoIPDB, "err", err)
			geo = nil
		} else {
			defer geo.Close()
		}
	}

	//
	// ── 4.  Wiring: stores → recorder → service → routes ───────────────
	//
	businesses := business.NewStore(db, logOut)
	users := user.NewStore(db)
	recorder := analytics.NewRecorder(db, geo, logOut)

	svc := site.New(businesses, users, recorder,
		cfg.Site.BaseDomain, cfg.Site.APIBaseURL, cfg.Cache.PageEntries)

	routes := web.New(svc, users, logOut).Routes()

	//
	// ── 5.  Middleware and server ───────────────────────────────────────
	//
	handler := middleware.Security(routes)
	if cfg.HTTP.ForceHTTPS {
		handler = middleware.ForceHTTPS(handler)
	}

	srv := server.New(cfg.HTTP.ListenAddr, handler)
	logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
	if err := srv.ListenAndServe(); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
}
