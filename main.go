// main.go
//
// Spybot server entry point.
//   - Loads .env (if present) and the environment configuration.
//   - Configures zerolog (level, optional console output).
//   - Loads the vocabulary and builds the embedding stack
//     (provider → optional persistent cache → per-game memo in the server).
//   - Starts the idle-session sweeper and the HTTP server.

package main

import (
	"context"
	"database/sql"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/spybot/internal/config"
	"github.com/robalobadob/spybot/internal/embed"
	"github.com/robalobadob/spybot/internal/embedcache"
	"github.com/robalobadob/spybot/internal/httpserver"
	"github.com/robalobadob/spybot/internal/store"
	"github.com/robalobadob/spybot/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	if err := words.Init(cfg.VocabFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load vocabulary")
	}
	vocab := words.Current()
	if vocab.Len() < cfg.DefaultCards {
		log.Fatal().Int("words", vocab.Len()).Int("defaultCards", cfg.DefaultCards).
			Msg("vocabulary is smaller than the default board")
	}

	embedder, closeCache, err := buildEmbedder(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up embeddings")
	}
	defer closeCache()

	mem := store.NewMemoryStore()
	go sweepSessions(context.Background(), mem, cfg.SessionTTL)

	srv := httpserver.New(mem, httpserver.Options{
		Vocabulary:    vocab,
		Embedder:      embedder,
		MaxCards:      cfg.MaxCards,
		DefaultCards:  cfg.DefaultCards,
		GuessDelay:    cfg.GuessDelay,
		JWTSecret:     cfg.JWTSecret,
		SessionTTL:    cfg.SessionTTL,
		ClientOrigin:  cfg.ClientOrigin,
		DailySalt:     cfg.DailySalt,
		CookieName:    cfg.CookieName,
		SecureCookies: cfg.SecureCookies,
	})
	log.Info().
		Str("port", cfg.Port).
		Int("words", vocab.Len()).
		Str("embedder", embedder.Name()).
		Str("cache", cfg.EmbedCache).
		Msg("starting spybot")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogFormat == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// buildEmbedder returns the configured provider wrapped in the configured
// cache, plus a func releasing whatever the cache holds open.
func buildEmbedder(ctx context.Context, cfg *config.Config) (embed.Embedder, func(), error) {
	var base embed.Embedder
	switch cfg.EmbedProvider {
	case config.ProviderOllama:
		base = embed.NewOllama(cfg.OllamaURL, cfg.OllamaModel, &http.Client{Timeout: 30 * time.Second})
	default:
		base = embed.NewHash(cfg.EmbedDim)
	}

	noop := func() {}
	switch cfg.EmbedCache {
	case config.CacheNone:
		return base, noop, nil
	case config.CacheSQLite:
		db, err := openDB(cfg.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := migrate(db, migrationsFS); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		if cfg.EmbedCacheTTL > 0 {
			go pruneLoop(ctx, db, cfg.EmbedCacheTTL)
		}
		return embed.NewCached(base, embedcache.NewSQLite(db)), closer(db), nil
	case config.CacheRedis:
		rc, err := embedcache.NewRedisFromURL(ctx, cfg.RedisURL, cfg.EmbedCacheTTL)
		if err != nil {
			return nil, noop, err
		}
		return embed.NewCached(base, rc), closer(rc), nil
	default:
		return embed.NewCached(base, embedcache.NewMemory()), noop, nil
	}
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			log.Warn().Err(err).Msg("close embedding cache")
		}
	}
}

// sweepSessions drops sessions idle for longer than ttl.
func sweepSessions(ctx context.Context, st store.Store, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	t := time.NewTicker(ttl / 4)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Sweep(ctx, now.Add(-ttl)); n > 0 {
				log.Info().Int("removed", n).Int("live", st.Len()).Msg("swept idle sessions")
			}
		}
	}
}

// pruneLoop removes expired vectors from the SQLite cache once an hour.
func pruneLoop(ctx context.Context, db *sql.DB, ttl time.Duration) {
	t := time.NewTicker(time.Hour)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := pruneEmbeddings(ctx, db, ttl, now)
			if err != nil {
				log.Warn().Err(err).Msg("prune embedding cache")
				continue
			}
			log.Debug().Int64("removed", n).Msg("pruned embedding cache")
		}
	}
}
