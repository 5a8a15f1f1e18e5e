// Package container wires the application graph: store, cache, messaging,
// resolver service, reaper, and the HTTP API.
package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkfold/linkfold/internal/cache"
	"github.com/linkfold/linkfold/internal/handlers"
	"github.com/linkfold/linkfold/internal/health"
	"github.com/linkfold/linkfold/internal/invalidation"
	"github.com/linkfold/linkfold/internal/messaging"
	"github.com/linkfold/linkfold/internal/middleware"
	"github.com/linkfold/linkfold/internal/reaper"
	"github.com/linkfold/linkfold/internal/shortener"
	"github.com/linkfold/linkfold/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// Code generation strategies.
const (
	StrategySequential = "sequential"
	StrategyRandom     = "random"
)

// In-process cache eviction policies, used when no Redis address is set.
const (
	EvictionNone = "none"
	EvictionLRU  = "lru"
)

// Options is the configuration surface, populated by humacli from flags and
// environment variables.
type Options struct {
	Port                int    `default:"8888"                  help:"Port to listen on"                                            short:"p"`
	BaseURL             string `default:"http://localhost:8888" help:"Base URL used in returned short links"`
	DatabaseURL         string `default:""                      help:"PostgreSQL DSN; empty runs the in-memory store"`
	RedisAddr           string `default:""                      help:"Redis address; empty uses the in-process cache and transport" short:"r"`
	CodeLength          int    `default:"7"                     help:"Length of generated short codes (6-8)"                        short:"c"`
	CodeStrategy        string `default:"sequential"            help:"Code generation strategy: sequential or random"`
	CacheTTLSeconds     int    `default:"86400"                 help:"Seconds a resolved URL stays cached"`
	CacheEvictionPolicy string `default:"lru"                   help:"In-process cache policy: none or lru"`
	CacheSize           int    `default:"10000"                 help:"Entry bound of the in-process LRU cache"`
	MaxRandomRetries    int    `default:"5"                     help:"Retry bound of the random code strategy"`
	ReapIntervalSeconds int    `default:"300"                   help:"Seconds between expired-mapping sweeps"`
}

// Validate rejects option combinations the wiring cannot honor.
func (o *Options) Validate() error {
	if o.CodeLength < 6 || o.CodeLength > 8 {
		return fmt.Errorf("code length must be between 6 and 8, got %d", o.CodeLength)
	}

	if o.CodeStrategy != StrategySequential && o.CodeStrategy != StrategyRandom {
		return fmt.Errorf("unknown code strategy %q", o.CodeStrategy)
	}

	if o.CacheEvictionPolicy != EvictionNone && o.CacheEvictionPolicy != EvictionLRU {
		return fmt.Errorf("unknown cache eviction policy %q", o.CacheEvictionPolicy)
	}

	if o.MaxRandomRetries < 1 {
		return fmt.Errorf("max random retries must be positive, got %d", o.MaxRandomRetries)
	}

	return nil
}

// poolCloser adapts pgxpool.Pool to the injector's shutdown contract.
type poolCloser struct {
	pool *pgxpool.Pool
}

func (p *poolCloser) Shutdown() error {
	p.pool.Close()

	return nil
}

// redisCloser adapts redis.Client to the injector's shutdown contract.
type redisCloser struct {
	client *redis.Client
}

func (r *redisCloser) Shutdown() error {
	return r.client.Close()
}

// cacheEvictor adapts shortener.Cache to the invalidation consumer.
type cacheEvictor struct {
	cache shortener.Cache
}

func (e *cacheEvictor) Invalidate(ctx context.Context, code string) error {
	return e.cache.Invalidate(ctx, shortener.Code(code))
}

// New builds the full application graph and registers every component with
// lifecycle needs in the injector.
func New(options *Options, logger *zap.Logger) (*do.Injector, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	injector := do.New()
	do.ProvideValue(injector, options)
	do.ProvideValue(injector, logger)

	mappingStore, storeChecker, err := buildStore(injector, options)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if options.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: options.RedisAddr})
		do.ProvideValue(injector, redisClient)
		do.ProvideValue(injector, &redisCloser{client: redisClient})
	}

	mappingCache, err := buildCache(options, redisClient)
	if err != nil {
		return nil, err
	}

	publisher, subscriber, err := buildPubSub(redisClient)
	if err != nil {
		return nil, err
	}

	publisherGroup := messaging.NewPublisherGroup(publisher)
	do.ProvideValue(injector, publisherGroup)

	publishInvalidate := messaging.NewPublishFunc[invalidation.CodeInvalidatedEvent](
		publisherGroup.Publisher(), invalidation.TopicCodeInvalidated)

	consumerGroup := messaging.NewConsumerGroup(subscriber, logger)
	consumerGroup.Add(messaging.NewConsumer(
		subscriber,
		invalidation.TopicCodeInvalidated,
		invalidation.NewHandler(&cacheEvictor{cache: mappingCache}, logger),
		logger,
	))
	do.ProvideValue(injector, consumerGroup)

	generator, err := buildGenerator(options, mappingStore)
	if err != nil {
		return nil, err
	}

	service := shortener.NewService(
		mappingStore,
		mappingCache,
		generator,
		time.Duration(options.CacheTTLSeconds)*time.Second,
		options.MaxRandomRetries,
		publishInvalidate,
		logger,
	)
	do.ProvideValue(injector, service)

	mappingReaper := reaper.New(
		mappingStore,
		mappingCache,
		publishInvalidate,
		time.Duration(options.ReapIntervalSeconds)*time.Second,
		logger,
	)
	do.ProvideValue(injector, mappingReaper)

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("linkfold", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(api))

	handlers.RegisterRoutes(api, handlers.NewURLHandler(service, options.BaseURL, logger))

	var cacheChecker health.Checker
	if redisClient != nil {
		cacheChecker = health.CheckerFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}

	health.RegisterRoutes(api, health.NewHandler(storeChecker, cacheChecker))

	do.ProvideValue(injector, router)
	do.ProvideValue(injector, api)

	return injector, nil
}

func buildStore(injector *do.Injector, options *Options) (shortener.Store, health.Checker, error) {
	if options.DatabaseURL == "" {
		memStore := store.NewMemoryStore()

		return memStore, health.CheckerFunc(memStore.Ping), nil
	}

	pool, err := pgxpool.New(context.Background(), options.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	do.ProvideValue(injector, pool)
	do.ProvideValue(injector, &poolCloser{pool: pool})

	pgStore := store.NewPostgresStore(pool)

	return pgStore, health.CheckerFunc(pgStore.Ping), nil
}

func buildCache(options *Options, redisClient *redis.Client) (shortener.Cache, error) {
	if redisClient != nil {
		return cache.NewRedisCache(redisClient), nil
	}

	if options.CacheEvictionPolicy == EvictionLRU {
		return cache.NewLRUCache(options.CacheSize)
	}

	return cache.NewNoopCache(), nil
}

// buildPubSub returns the invalidation transport: redis streams when Redis
// is configured, an in-process channel otherwise.
func buildPubSub(redisClient *redis.Client) (message.Publisher, message.Subscriber, error) {
	if redisClient == nil {
		channel := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})

		return channel, channel, nil
	}

	publisher, err := redisstream.NewPublisher(
		redisstream.PublisherConfig{Client: redisClient},
		watermill.NopLogger{},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create stream publisher: %w", err)
	}

	subscriber, err := redisstream.NewSubscriber(
		redisstream.SubscriberConfig{
			Client:        redisClient,
			ConsumerGroup: "", // fan-out: every node sees every invalidation
		},
		watermill.NopLogger{},
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create stream subscriber: %w", err)
	}

	return publisher, subscriber, nil
}

func buildGenerator(options *Options, mappingStore shortener.Store) (shortener.Generator, error) {
	if options.CodeStrategy == StrategyRandom {
		return shortener.NewRandomGenerator(mappingStore, options.CodeLength, options.MaxRandomRetries)
	}

	return shortener.NewSequentialGenerator(mappingStore, options.CodeLength), nil
}
