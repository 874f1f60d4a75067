package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-maze/api"
	api_i "github.com/beka-birhanu/vinom-maze/api/i"
	"github.com/beka-birhanu/vinom-maze/api/identity"
	"github.com/beka-birhanu/vinom-maze/api/mazeapi"
	"github.com/beka-birhanu/vinom-maze/api/traversalapi"
	"github.com/beka-birhanu/vinom-maze/config"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/infrastruture/metrics"
	"github.com/beka-birhanu/vinom-maze/infrastruture/repo"
	"github.com/beka-birhanu/vinom-maze/infrastruture/runstore"
	"github.com/beka-birhanu/vinom-maze/infrastruture/token"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/beka-birhanu/vinom-maze/traversal"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"
)

// Global variables for dependencies
var (
	mongoClient         *mongo.Client
	redisClient         *redis.Client
	accountRepo         *repo.AccountRepo
	mazeRepo            i.MazeRepo
	runStore            i.RunStore
	traversalMetrics    *metrics.Traversal
	mazeCatalog         i.MazeCatalog
	sessionManager      *service.TraversalSessionManager
	jwtTokenizer        i.Tokenizer
	authService         i.Authenticator
	authController      api_i.Controller
	mazeController      api_i.Controller
	traversalController api_i.Controller
	router              *api.Router
	appLogger           i.Logger
)

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating %s logger: %v", prefix, err))
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRepos(ctx context.Context, client *mongo.Client) {
	accountRepo = repo.NewAccountRepo(client, config.Envs.DBName, "accounts")
	if err := accountRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Creating account indexes: %v", err))
		os.Exit(1)
	}
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Info("Repositories initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRunStore() {
	var err error
	runStore, err = runstore.NewRedisRunStore(runstore.Config{
		Client:      redisClient,
		TTLSeconds:  config.Envs.RunTTLSeconds,
		HistorySize: config.Envs.RunHistorySize,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating run store: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Run store initialized")
}

func initMetrics() {
	traversalMetrics = metrics.NewTraversal()
	appLogger.Info("Metrics initialized")
}

func initMazeCatalog(ctx context.Context) {
	var err error
	mazeCatalog, err = service.NewMazeCatalog(mazeRepo, newLogger("MAZE-CATALOG", config.ColorYellow))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze catalog: %v", err))
		os.Exit(1)
	}

	if config.Envs.MazeSeedFile != "" {
		docs, err := maze.DecodeFile(config.Envs.MazeSeedFile)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Reading maze seed file: %v", err))
			os.Exit(1)
		}
		if _, err := mazeCatalog.Import(ctx, docs); err != nil {
			appLogger.Error(fmt.Sprintf("Importing maze seed file: %v", err))
			os.Exit(1)
		}
	}
	appLogger.Info("Maze catalog initialized")
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewTraversalSessionManager(&service.Config{
		MazeRepo: mazeRepo,
		RunStore: runStore,
		Metrics:  traversalMetrics,
		Logger:   newLogger("SESSION-MANAGER", config.ColorCyan),
		EngineOptions: []traversal.Option{
			traversal.WithStepDelay(time.Duration(config.Envs.StepDelayMS) * time.Millisecond),
		},
		IdleTTL:     time.Duration(config.Envs.SessionIdleTTL) * time.Second,
		MaxSessions: config.Envs.MaxSessions,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(accountRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	apiLogger := newLogger("API", config.ColorMagenta)
	var err error
	mazeController, err = mazeapi.NewController(mazeCatalog, runStore, apiLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	traversalController, err = traversalapi.NewController(sessionManager, apiLogger)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating traversal controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController, traversalController},
		AuthorizationMiddleware: identity.Authoriz(t),
		MetricsHandler:          traversalMetrics.Handler(),
	})
	appLogger.Info("Router initialized")
}

func main() {
	// Initialize dependencies
	appLogger, _ = logger.New("APP", config.ColorGreen, os.Stdout)

	initCtx, cancelInit := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelInit()

	initMongo(initCtx)
	initRepos(initCtx, mongoClient)
	initRedis(initCtx)
	initRunStore()
	initMetrics()
	initMazeCatalog(initCtx)
	initSessionManager()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return router.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		sessionManager.StopAll()
		appLogger.Info("Traversal sessions stopped")
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Error(fmt.Sprintf("Server stopped: %v", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = redisClient.Close()
	_ = mongoClient.Disconnect(shutdownCtx)
	appLogger.Info("Shut down")
}
