package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	gommonlog "github.com/labstack/gommon/log"

	"smartattend/docs"
	"smartattend/internal/auth"
	"smartattend/internal/cache"
	"smartattend/internal/config"
	"smartattend/internal/db"
	"smartattend/internal/handler"
	"smartattend/internal/repository"
	"smartattend/internal/router"
	"smartattend/internal/service"
)

// @title Smart Attendance API
// @version 1.0
// @description Student signup and login, classroom listing, attendance marking and focus mode sessions.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(logLevel(cfg.Log.Level))
	e.Use(middleware.RequestID())

	if cfg.UsesDefaultSecret() {
		e.Logger.Warn("jwt.secret is the built-in default; set APP_JWT_SECRET before exposing this server")
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if cfg.Database.Reset {
		log.Println("database.reset set, dropping all tables...")
		if err := db.Reset(gormDB); err != nil {
			log.Fatalf("reset: %v", err)
		}
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.Redis)
	if err := cacheClient.Ping(context.Background()); err != nil {
		e.Logger.Warnf("redis unavailable at %s, running without cache: %v", cfg.Redis.Addr, err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	classroomRepo := repository.NewClassroomRepository(gormDB)
	attendanceRepo := repository.NewAttendanceRepository(gormDB)
	focusRepo := repository.NewFocusRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expire)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, classroomRepo, jwtService, tokenStore)
	classroomService := service.NewClassroomService(classroomRepo, cacheClient)
	attendanceService := service.NewAttendanceService(attendanceRepo, classroomRepo)
	focusService := service.NewFocusService(focusRepo)

	router.Register(e, jwtService, authService, router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Classroom:  handler.NewClassroomHandler(classroomService),
		Attendance: handler.NewAttendanceHandler(attendanceService),
		Focus:      handler.NewFocusHandler(focusService),
	})

	if cfg.Swagger.Host != "" {
		docs.SwaggerInfo.Host = strings.TrimPrefix(strings.TrimPrefix(cfg.Swagger.Host, "http://"), "https://")
	}
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		if err := e.Start(cfg.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	if err := cacheClient.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
	if err := db.Close(gormDB); err != nil {
		log.Printf("database close: %v", err)
	}
	log.Println("Server exited")
}

func logLevel(level string) gommonlog.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return gommonlog.DEBUG
	case "warn":
		return gommonlog.WARN
	case "error":
		return gommonlog.ERROR
	default:
		return gommonlog.INFO
	}
}
