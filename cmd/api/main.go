package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"pokecontact/internal/config"
	"pokecontact/internal/db"
	apihttp "pokecontact/internal/http"
	"pokecontact/internal/pokeapi"
	"pokecontact/internal/repository"
	"pokecontact/internal/service"
	"pokecontact/internal/store"

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

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	contactRepo := repository.NewPgContactRepository(pool)
	pokeClient := pokeapi.NewClient(cfg.PokeAPIBaseURL, cfg.PokeAPITimeout, logger)

	// El documento de asociaciones vive en Redis cuando hay instancia
	// configurada; si no, en memoria (solo util para desarrollo).
	kv := store.NewMemoryKVStore()
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, falling back to memory store", zap.Error(err))
		} else {
			kv = store.NewRedisKVStore(redisClient)
		}
		cancel()
	}

	associationSvc := service.NewAssociationService(kv, contactRepo, logger)
	matchSvc := service.NewMatchService(associationSvc, logger)
	tradeSvc := service.NewTradeService(associationSvc, contactRepo)

	pokemonHandler := apihttp.NewPokemonHandler(logger, pokeClient)
	contactHandler := apihttp.NewContactHandler(logger, contactRepo, associationSvc, matchSvc, pokeClient)
	tradeHandler := apihttp.NewTradeHandler(logger, tradeSvc)
	router := apihttp.NewRouter(logger, pokemonHandler, contactHandler, tradeHandler)

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
