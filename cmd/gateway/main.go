package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/internal/backend"
	"storefront/internal/cart"
	"storefront/internal/cart/cache"
	"storefront/internal/checkout"
	h "storefront/internal/http"
)

type Config struct {
	HTTPPort        string
	BackendURL      string
	CartStore       string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendURL:      backend.BaseURLFromEnv(),
		CartStore:       getEnv("CART_STORE", "memory"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)
	sugar := logger.Sugar()

	cfg := loadConfig()
	ctx := context.Background()

	// Cart storage: in-memory by default, MongoDB when configured.
	var repo cart.CartRepository
	switch cfg.CartStore {
	case "mongo":
		mongoDB, err := cart.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			sugar.Fatalf("connect to MongoDB: %v", err)
		}
		mongoRepo := cart.NewMongoRepository(mongoDB)
		if indexed, ok := mongoRepo.(interface{ CreateIndexes(context.Context) error }); ok {
			if err := indexed.CreateIndexes(ctx); err != nil {
				sugar.Warnf("create cart indexes: %v", err)
			}
		}
		repo = mongoRepo
		sugar.Infof("cart store: mongodb at %s", cfg.MongoURI)
	case "memory":
		repo = cart.NewMemoryRepository()
		sugar.Infof("cart store: in-memory")
	default:
		sugar.Fatalf("unknown CART_STORE %q (want memory or mongo)", cfg.CartStore)
	}

	// Cart cache: enabled only when a Redis address is configured.
	var cartCache cache.CartCache = cache.Disabled{}
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			sugar.Fatalf("redis connection failed: %v", err)
		}
		cartCache = cache.NewRedisCache(redisClient)
		sugar.Infof("cart cache: redis at %s", cfg.RedisAddr)
	}

	client := backend.NewClient(cfg.BackendURL)
	sugar.Infof("storefront backend: %s", cfg.BackendURL)

	cartService := cart.NewService(repo, cartCache)
	checkoutService := checkout.NewService(client, cartService)

	router := h.NewRouter(
		h.NewProductHandler(client, cfg.RequestTimeout),
		h.NewCartHandler(cartService, client, cfg.RequestTimeout),
		h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout),
		h.NewAdminHandler(client, cfg.RequestTimeout),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infof("storefront gateway starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Fatalf("server forced to shutdown: %v", err)
	}
	sugar.Info("server exited")
}
