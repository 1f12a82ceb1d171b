package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/sneha-1019/PawfectHomes/internal/config"
	api "github.com/sneha-1019/PawfectHomes/internal/http"
	"github.com/sneha-1019/PawfectHomes/internal/log"
	"github.com/sneha-1019/PawfectHomes/internal/metrics"
	"github.com/sneha-1019/PawfectHomes/internal/oauth"
	"github.com/sneha-1019/PawfectHomes/internal/queue"
	"github.com/sneha-1019/PawfectHomes/internal/repo"
	"github.com/sneha-1019/PawfectHomes/internal/storage"
)

// @title Pawfect Home API
// @version 1.0
// @description Pet adoption marketplace: auth, listings, adoption workflow, admin moderation.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Errorf("mongo connect: %v", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Errorf("ensure indexes: %v", err)
		os.Exit(1)
	}

	var pub queue.Publisher = queue.NewNoop()
	if cfg.RabbitURL != "" {
		p, err := queue.NewRabbit(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			log.Errorf("rabbit connect: %v", err)
			os.Exit(1)
		}
		pub = p
	} else {
		log.Warnf("RABBIT_URL not set; mail events will be dropped")
	}
	defer pub.Close()

	var rl *api.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		rl = api.NewRateLimiter(rdb, cfg.RateLimitPerMin)
	}

	uploader := storage.NewCloudinary(cfg.CloudinaryCloud, cfg.CloudinaryKey,
		cfg.CloudinarySecret, cfg.CloudinaryFolder)
	google := oauth.NewGoogle(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURI)

	h := api.NewHandler(store, pub, uploader, google, cfg)
	r := api.NewRouter(h, rl)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()

	log.Infof("server listening on :%s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		log.Errorf("server error: %v", err)
	}
}
