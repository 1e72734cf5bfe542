package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"stash-connect/internal/config"
	"stash-connect/internal/crypto"
	"stash-connect/internal/db"
	apihttp "stash-connect/internal/http"
	"stash-connect/internal/repository"
	"stash-connect/internal/service"
	"stash-connect/internal/stash"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	api := stash.NewHTTPClient(cfg.StashBaseURL, cfg.StashClientKey, cfg.StashDeviceID, logger)

	var unwrapper *crypto.RSAUnwrapper
	if cfg.StashPrivateKeyFile != "" {
		unwrapper, err = crypto.LoadRSAUnwrapper(cfg.StashPrivateKeyFile)
		if err != nil {
			logger.Fatal("load private key", zap.Error(err))
		}
	} else {
		logger.Warn("private key not configured: encrypted keys and locations stay undecoded")
	}

	remote := repository.NewRemoteDataAccess(api, unwrapper)

	var (
		keyCache service.KeyCache
		limiter  service.ActionLimiter
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisActionLimiter(redisClient, cfg.ActionRateWindow, cfg.ActionRateLimit)
			if cfg.KeyCacheSecret != "" {
				sealer, err := crypto.NewSealer([]byte(cfg.KeyCacheSecret))
				if err != nil {
					logger.Fatal("key cache sealer", zap.Error(err))
				}
				keyCache = service.NewRedisKeyCache(redisClient, sealer, cfg.KeyCacheTTL)
			} else {
				logger.Warn("KEY_CACHE_SECRET not set: conversation keys cached in memory only")
			}
		}
		cancel()
	}
	if keyCache == nil {
		keyCache = service.NewMemoryKeyCache(cfg.KeyCacheTTL)
	}
	if limiter == nil {
		limiter = service.NewMemoryActionLimiter(cfg.ActionRateWindow, cfg.ActionRateLimit)
	}
	keySource := service.NewCachedKeySource(remote, keyCache, logger)

	var messageRepo repository.MessageRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		err = db.Ping(ctxPing, pool)
		cancel()
		if err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("db schema", zap.Error(err))
		}
		messageRepo = repository.NewPgMessageRepository(pool)
	}

	resolver := service.NewKeyResolver(keySource)
	hydrator := service.NewHydrator(remote, logger)
	assembler := service.NewMessageAssembler(logger, resolver, crypto.AESCBC{}, hydrator, unwrapper)
	conversations := service.NewConversationBuilder(resolver, unwrapper, hydrator)
	messageSvc := service.NewMessageService(remote, assembler, conversations, messageRepo, logger)
	actionSvc := service.NewActionService(api, logger)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	messageHandler := apihttp.NewMessageHandler(logger, messageSvc, actionSvc)
	entityHandler := apihttp.NewEntityHandler(logger, hydrator)
	router := apihttp.NewRouter(logger, jwtSvc, limiter, messageHandler, entityHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
