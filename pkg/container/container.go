package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	bookHandler "library-backend/internal/domains/book/handler"
	bookService "library-backend/internal/domains/book/service"
	circulationHandler "library-backend/internal/domains/circulation/handler"
	circulationService "library-backend/internal/domains/circulation/service"
	"library-backend/internal/domains/payment/gateway"
	paymentHandler "library-backend/internal/domains/payment/handler"
	paymentService "library-backend/internal/domains/payment/service"
	"library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/internal/infrastructure/lock"
	"library-backend/internal/storage"
	"library-backend/internal/storage/memory"
	"library-backend/internal/storage/postgres"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every long-lived dependency of the API process.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config *config.Config
	DB     *database.PostgresDB // nil unless STORAGE_DRIVER=postgres
	Redis  *cache.RedisClient   // nil unless LOCK_DRIVER=redis
	Store  storage.Store
	Locker lock.Locker

	// ========================================
	// SERVICE LAYER
	// ========================================
	BookService        bookService.ServiceInterface
	CirculationService circulationService.ServiceInterface
	PaymentService     paymentService.ServiceInterface

	// ========================================
	// HANDLER LAYER
	// ========================================
	BookHandler        *bookHandler.Handler
	CirculationHandler *circulationHandler.Handler
	PaymentHandler     *paymentHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer builds the dependency graph in order:
// storage, lock, services, handlers.
// On failure any connection already opened is closed.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...circulationService.Option) (_ *Container, err error) {
	log.Info().Str("env", cfg.App.Environment).Msg("initializing container")

	c := &Container{Config: cfg}
	defer func() {
		if err != nil {
			c.Cleanup()
		}
	}()

	// ========================================
	// STEP 1: STORAGE
	// ========================================
	if err := c.initStorage(ctx); err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	// ========================================
	// STEP 2: LOCKS
	// ========================================
	if err := c.initLocker(ctx); err != nil {
		return nil, fmt.Errorf("failed to init locker: %w", err)
	}

	// ========================================
	// STEP 3: SERVICES
	// ========================================
	c.initServices(opts...)

	// ========================================
	// STEP 4: HANDLERS
	// ========================================
	c.initHandlers()

	log.Info().
		Str("storage", cfg.Storage.Driver).
		Str("lock", cfg.Lock.Driver).
		Msg("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initStorage(ctx context.Context) error {
	if c.Config.Storage.Driver == config.StorageMemory {
		c.Store = memory.NewStore()
		return nil
	}

	dbConfig, err := config.LoadDatabaseConfig(c.Config.Database)
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	store := postgres.NewStore(db.Pool)
	if err := store.EnsureSchema(connectCtx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	c.Store = store

	return nil
}

func (c *Container) initLocker(ctx context.Context) error {
	if c.Config.Lock.Driver == config.LockLocal {
		c.Locker = lock.NewLocalLocker()
		return nil
	}

	rc := cache.NewRedisClient(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		_ = rc.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = rc
	c.Locker = lock.NewRedisLocker(rc.Client, c.Config.Lock.TTL)

	return nil
}

func (c *Container) initServices(opts ...circulationService.Option) {
	circulation := circulationService.NewService(c.Store, c.Locker, opts...)

	gw := gateway.NewSimulatedGateway(gateway.SimulatedConfig{
		DeclineAbove: c.Config.Gateway.DeclineAbove,
		Latency:      c.Config.Gateway.Latency,
	})

	c.BookService = bookService.NewService(c.Store)
	c.CirculationService = circulation
	c.PaymentService = paymentService.NewService(circulation, c.Store, gw)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.CirculationHandler = circulationHandler.NewHandler(c.CirculationService)
	c.PaymentHandler = paymentHandler.NewHandler(c.PaymentService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup closes every connection the container opened.
func (c *Container) Cleanup() {
	if c.Store != nil {
		c.Store.Close()
	}

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("database connections closed")
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis")
		} else {
			log.Info().Msg("redis connections closed")
		}
	}
}
