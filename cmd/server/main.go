package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/miyako/todoweb/internal/config"
	"github.com/miyako/todoweb/internal/constants"
	"github.com/miyako/todoweb/internal/database"
	"github.com/miyako/todoweb/internal/handlers"
	"github.com/miyako/todoweb/internal/middleware"
	"github.com/miyako/todoweb/internal/repository"
	"github.com/miyako/todoweb/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware
	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Load templates
	r.LoadHTMLGlob("web/templates/*.html")

	// Wire dependencies
	userRepo := repository.NewUserRepository(database.GetDB())
	todoRepo := repository.NewTodoRepository(database.GetDB())
	authService := services.NewAuthService(userRepo)
	todoService := services.NewTodoService(todoRepo)
	authHandler := handlers.NewAuthHandler(authService)
	todoHandler := handlers.NewTodoHandler(todoService)

	// Auth routes (public)
	r.GET("/register", authHandler.ShowRegister)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Todo routes (protected)
	todos := r.Group("/", middleware.RequireAuth())
	{
		todos.GET("/", todoHandler.Dashboard)
		todos.GET("/todos/new", todoHandler.ShowCreate)
		todos.POST("/todos/new", todoHandler.Create)
		todos.GET("/todos/:id/edit", todoHandler.ShowEdit)
		todos.POST("/todos/:id/edit", todoHandler.Edit)
		todos.POST("/todos/:id/delete", todoHandler.Delete)
		todos.POST("/todos/:id/toggle", todoHandler.Toggle)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// newSessionStore builds a cookie-backed store, or a Redis-backed one when
// REDIS_HOST is configured.
func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	isProduction := cfg.GinMode == "release"
	options := sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction, // true in production (HTTPS), false in development
		SameSite: 2,            // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	}

	if cfg.RedisHost != "" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		store, err := redisStore.NewStore(
			10,                        // Redis pool size
			"tcp",                     // network type
			redisAddr,                 // Redis address from config
			"",                        // username (empty for default user)
			"",                        // password (empty = no password)
			[]byte(cfg.SessionSecret), // authentication key
		)
		if err != nil {
			return nil, err
		}
		store.Options(options)
		return store, nil
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(options)
	return store, nil
}
