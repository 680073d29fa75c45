package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/beka-birhanu/decision-maze/api"
	api_i "github.com/beka-birhanu/decision-maze/api/i"
	"github.com/beka-birhanu/decision-maze/api/identity"
	sessionapi "github.com/beka-birhanu/decision-maze/api/session"
	"github.com/beka-birhanu/decision-maze/config"
	logger "github.com/beka-birhanu/decision-maze/infrastruture/log"
	"github.com/beka-birhanu/decision-maze/infrastruture/token"
	"github.com/beka-birhanu/decision-maze/service"
	"github.com/beka-birhanu/decision-maze/service/i"
	"github.com/gin-gonic/gin"
)

const tokenIssuer = "decision-maze"

// Global variables for dependencies
var (
	sessionManager    *service.SessionManager
	jwtTokenizer      i.Tokenizer
	sessionController api_i.Controller
	router            *api.Router
	appLogger         *logger.Logger
)

func initLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	if err := l.SetLevel(config.Envs.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Setting %s log level: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initSessionManager() {
	sessionLogger := initLogger("SESSION-MANAGER", config.ColorCyan)

	var err error
	sessionManager, err = service.NewSessionManager(&service.Config{
		Game:        config.Envs.GameConfig(),
		Seed:        config.Envs.Seed,
		MaxSessions: config.Envs.MaxSessions,
		Logger:      sessionLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}

	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	key := config.Envs.SessionKey
	if key == "" {
		secret := make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			appLogger.Error(fmt.Sprintf("Generating session key: %v", err))
			os.Exit(1)
		}
		key = base64.URLEncoding.EncodeToString(secret)
		appLogger.Warn("SESSION_KEY is not set, session tokens will not survive a restart")
	}

	jwtTokenizer = token.NewJwtService(key, tokenIssuer, config.Envs.SessionTTL)
	appLogger.Info("JWT Tokenizer initialized")
}

func initSessionController(sm i.SessionManager, ts i.Tokenizer) {
	var err error
	sessionController, err = sessionapi.NewSessionController(sm, ts)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session controller initialized")
}

func initRouter() {
	var authorization gin.HandlerFunc
	if config.Envs.APIKey != "" {
		authorization = identity.Authoriz(config.Envs.APIKey)
	} else {
		appLogger.Warn("API_KEY is not set, session routes are open")
	}

	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{sessionController},
		AuthorizationMiddleware: authorization,
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize dependencies
	appLogger = initLogger("APP", config.ColorGreen)

	initSessionManager()
	defer sessionManager.StopAll()

	initJWTTokenizer()
	initSessionController(sessionManager, jwtTokenizer)
	initRouter()

	// Run HTTP server
	appLogger.Info(fmt.Sprintf("Listening on %s:%d", config.Envs.HostIP, config.Envs.RESTPort))
	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Running server: %v", err))
		sessionManager.StopAll()
		os.Exit(1)
	}
	appLogger.Info("Server stopped")
}
