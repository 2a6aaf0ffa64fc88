package app

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/skingford/book-web/internal/config"
	"github.com/skingford/book-web/internal/flows"
	"github.com/skingford/book-web/internal/logger"
	"github.com/skingford/book-web/internal/metadata"
	"github.com/skingford/book-web/internal/redis"
	"github.com/skingford/book-web/internal/scheduler"
	"github.com/skingford/book-web/internal/search"
	"github.com/skingford/book-web/internal/store"
	"github.com/skingford/book-web/internal/store/db"
	"github.com/skingford/book-web/internal/store/memory"
	redisstore "github.com/skingford/book-web/internal/store/redis"
	"github.com/skingford/book-web/internal/utils"
	"github.com/skingford/book-web/internal/validate"
)

// Core is everything an entrypoint needs to operate on bookmarks: the
// stores and the flows built on them. Both the server and the CLI use it.
type Core struct {
	Logger     logger.Logger
	Store      *db.Store
	History    store.KV
	HistoryKV  string // "redis" | "memory"
	Categories *flows.Categories
	Bookmarks  *flows.Bookmarks
	Search     *search.Service
	Importer   *scheduler.Importer

	redisClient *goredis.Client
}

// Open connects the database (creating the schema when missing) and, when
// configured, Redis for search history. Without an address, or when Redis
// does not answer within its connect timeout, history lives in memory for
// the life of the process.
func Open(ctx context.Context, cfg *config.Config, log logger.Logger) (*Core, error) {
	log.Info("opening database",
		logger.String("driver", cfg.DBDriver))
	st, err := db.Open(ctx, db.Options{
		Driver:       cfg.DBDriver,
		DSN:          cfg.DBDSN,
		MaxOpenConns: cfg.DBMaxOpenConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	c := &Core{Logger: log, Store: st}

	c.History, c.HistoryKV = memory.NewKV(), "memory"
	if cfg.RedisAddr == "" {
		log.Info("redis not configured, search history kept in memory")
	} else if client, err := redis.New(ctx, redisOptions(cfg), log); err != nil {
		// degraded: history is not persisted
		log.Warn("redis unavailable, search history kept in memory", logger.Error(err))
	} else {
		c.redisClient = client
		c.History, c.HistoryKV = redisstore.NewStore(client), "redis"
		log.Info("Redis initialized successfully")
	}

	v := validate.New()
	hist := search.NewHistory(c.History, cfg.SearchHistoryLimit)

	c.Categories = flows.NewCategories(st, v, log)
	c.Bookmarks = flows.NewBookmarks(st, v, log, metadata.NewClient(cfg.FetchMetadata, cfg.FetchTimeout, log))
	c.Search = search.NewService(st, hist, log, search.ServiceOptions{
		Limit:   cfg.SearchResultLimit,
		Popular: cfg.PopularSearches,
	})
	c.Importer = scheduler.NewImporter(st, log)
	return c, nil
}

func redisOptions(cfg *config.Config) redis.ConnectOptions {
	return redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		RedisDB:        cfg.RedisDB,
		DialTimeout:    cfg.RedisDT,
		ReadTimeout:    cfg.RedisRT,
		WriteTimeout:   cfg.RedisWT,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
		WarnThreshold:  cfg.RedisWarnThreshold,
	}
}

// Close releases Redis then the database.
func (c *Core) Close() {
	if c.redisClient != nil {
		utils.CloseLogged(c.redisClient, "redis", c.Logger)
	}
	utils.CloseLogged(c.Store, "database", c.Logger)
}
