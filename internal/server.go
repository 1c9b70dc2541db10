package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymlog/internal/api"
	"github.com/2beens/gymlog/internal/assets"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/middleware"
	"github.com/2beens/gymlog/internal/persistence"
	"github.com/2beens/gymlog/internal/persistence/local"
	"github.com/2beens/gymlog/internal/persistence/remote"
	"github.com/2beens/gymlog/internal/store"
	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/telemetry/tracing"
	"github.com/2beens/gymlog/pkg"
)

const (
	memoryKVSize    = 32 << 20
	sqliteFileName  = "gymlog.db"
	s3AssetsPrefix  = "exercises"
	assetsURLPrefix = "/assets/"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	appSecret         string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	// closed on shutdown, e.g. the sqlite kv
	closers []io.Closer

	store    *store.Store
	uploader assets.Uploader
	// set when images are kept on local disk and served by this server
	diskAssets *assets.DiskStore

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config  *config.Config
	Secrets *config.Secrets
}

func NewServer(ctx context.Context, params NewServerParams) (_ *Server, err error) {
	cfg := params.Config
	secrets := params.Secrets
	if secrets == nil {
		secrets = &config.Secrets{}
	}

	s := &Server{
		config:       cfg,
		appSecret:    secrets.AppSecret,
		otelShutdown: func() {},
	}
	defer func() {
		if err != nil {
			s.closeResources()
		}
	}()

	var collectors []prometheus.Collector
	if cfg.Backend == config.Backend.Remote {
		s.dbPool, err = db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDB,
			DBUser:         cfg.PostgresUser,
			DBPassword:     secrets.PostgresPassword,
			TracingEnabled: cfg.TracingEnabled,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create new database pool: %w", err)
		}
		collectors = append(collectors, pgxpoolprometheus.NewCollector(s.dbPool, map[string]string{"db_name": cfg.PostgresDB}))
	}

	s.promRegistry = metrics.SetupPrometheus(collectors...)
	s.metricsManager = metrics.NewManager("gymlog", "main", s.promRegistry)
	s.metricsManager.GaugeLifeSignal.Set(0)

	if cfg.RedisEnabled() {
		s.redisClient = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
			Password: secrets.RedisPassword,
			DB:       0, // use default DB
		})
		rdbStatus := s.redisClient.Ping(ctx)
		if err := rdbStatus.Err(); err != nil {
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	otelShutdown, err := tracing.HoneycombSetup(cfg.TracingEnabled, "gymlog", s.redisClient)
	if err != nil {
		return nil, fmt.Errorf("failed to setup honeycomb tracing: %w", err)
	}
	s.otelShutdown = otelShutdown

	adapter, err := s.persistenceAdapter(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.setupUploader(ctx); err != nil {
		return nil, err
	}

	syncDebounce, err := cfg.SyncDebounceDuration()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	storeOpts := []store.Option{
		store.WithMetrics(s.metricsManager),
		store.WithLocation(loc),
		store.WithSyncDebounce(syncDebounce),
		store.WithFailureHandler(logSyncFailure),
	}
	if s.uploader != nil {
		storeOpts = append(storeOpts, store.WithUploader(s.uploader))
		if cfg.StagingDir != "" {
			storeOpts = append(storeOpts, store.WithStagingDir(cfg.StagingDir))
		}
	}
	s.store = store.New(adapter, storeOpts...)
	s.store.Hydrate(ctx)

	return s, nil
}

// persistenceAdapter builds the adapter selected by the backend config.
func (s *Server) persistenceAdapter(ctx context.Context) (persistence.Adapter, error) {
	cfg := s.config
	if cfg.Backend == config.Backend.Remote {
		if err := remote.Migrate(ctx, s.dbPool); err != nil {
			return nil, fmt.Errorf("failed to migrate remote db: %w", err)
		}
		log.Infof("using remote backend [%s] for user [%s]", cfg.PostgresDB, cfg.UserID)
		return remote.NewAdapter(s.dbPool, cfg.UserID), nil
	}

	var kv local.KV
	switch cfg.LocalKV {
	case config.LocalKV.File:
		fileKV, err := local.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to create file kv: %w", err)
		}
		kv = fileKV
	case config.LocalKV.SQLite:
		if err := pkg.EnsureDir(cfg.DataDir); err != nil {
			return nil, fmt.Errorf("failed to create data dir: %w", err)
		}
		sqliteKV, err := local.NewSQLiteKV(filepath.Join(cfg.DataDir, sqliteFileName))
		if err != nil {
			return nil, fmt.Errorf("failed to create sqlite kv: %w", err)
		}
		s.closers = append(s.closers, sqliteKV)
		kv = sqliteKV
	case config.LocalKV.Redis:
		if s.redisClient == nil {
			return nil, errors.New("redis local kv needs redis_host")
		}
		kv = local.NewRedisKV(s.redisClient)
	case config.LocalKV.Memory:
		kv = local.NewMemoryKV(memoryKVSize)
	default:
		return nil, fmt.Errorf("unknown local kv: %s", cfg.LocalKV)
	}

	log.Infof("using local backend with [%s] kv", cfg.LocalKV)
	return local.NewAdapter(kv, cfg.KeyPrefix, s.metricsManager), nil
}

func (s *Server) setupUploader(ctx context.Context) error {
	cfg := s.config
	switch cfg.Assets {
	case config.AssetStore.Disk:
		diskStore, err := assets.NewDiskStore(cfg.AssetsDir, cfg.AssetsBaseURL)
		if err != nil {
			return fmt.Errorf("failed to create disk asset store: %w", err)
		}
		s.diskAssets = diskStore
		s.uploader = diskStore
	case config.AssetStore.S3:
		s3Store, err := assets.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, s3AssetsPrefix)
		if err != nil {
			return fmt.Errorf("failed to create s3 asset store: %w", err)
		}
		s.uploader = s3Store
	default:
		log.Debugln("exercise image uploads disabled")
	}
	return nil
}

func logSyncFailure(f store.SyncFailure) {
	log.WithFields(log.Fields{
		"op":          f.Op,
		"entity":      f.EntityID,
		"rolled_back": f.RolledBack,
	}).Errorf("sync failed: %s", f.Err)
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	handler := api.NewHandler(s.store, s.uploader)
	handler.RegisterRoutes(r)

	if s.diskAssets != nil {
		r.PathPrefix(assetsURLPrefix).Handler(
			http.StripPrefix(assetsURLPrefix, http.FileServer(s.diskAssets.FileSystem())),
		).Methods("GET").Name("assets")
	}

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.appSecret, "/health")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	if s.redisClient != nil && s.config.RateLimitPerMin > 0 {
		reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
		r.Use(middleware.RateLimit(reqRateLimiter, "main-router", s.config.RateLimitPerMin, s.metricsManager))
	}
	r.Use(middleware.DrainAndCloseRequest())

	return r, nil
}

func (s *Server) Serve(host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(host, strconv.Itoa(s.config.MetricsPort))
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// SeedDemoData fills an empty catalog with the demo exercises.
func (s *Server) SeedDemoData() error {
	op, err := s.store.SeedDemoData()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return op.Wait(ctx)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before the store stops taking mutations
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	s.closeResources()

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

// closeResources closes the store first, so pending saves can still reach
// the kv, db and redis clients.
func (s *Server) closeResources() {
	if s.store != nil {
		s.store.Close()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			log.Errorf("failed to close resource: %s", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}
}
