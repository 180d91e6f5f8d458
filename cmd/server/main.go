package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tactical-server/internal/api"
	"tactical-server/internal/config"
	"tactical-server/internal/database"
	"tactical-server/internal/middleware"
	"tactical-server/internal/services"
	"tactical-server/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

var startTime = time.Now()

func main() {
	log.Println("Starting Tactical Operations Server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Server address: %s (mode: %s)", cfg.Server.Address, cfg.Server.Mode)

	db, err := database.InitPostgreSQL(cfg.Database.PostgreSQL)
	if err != nil {
		log.Fatalf("PostgreSQL connection failed: %v", err)
	}
	log.Println("PostgreSQL connected")

	// Redis is optional: without it stats caching is skipped and every
	// read hits the database.
	var redisClient *redis.Client
	if cfg.Database.Redis.Enabled {
		redisClient, err = database.InitRedis(cfg.Database.Redis)
		if err != nil {
			log.Printf("Redis connection failed: %v, continuing without cache", err)
			redisClient = nil
		} else {
			log.Println("Redis connected")
		}
	}

	userService := services.NewUserService(db)
	agentService := services.NewAgentService(db)
	operationService := services.NewOperationService(db)
	assignmentService := services.NewAssignmentService(db)
	reportService := services.NewReportService(db)
	componentService := services.NewComponentService(db)
	activityService := services.NewActivityService(db)
	chatService := services.NewChatService(db)
	statsService := services.NewStatsService(db, redisClient)
	log.Println("Services initialized")

	wsHub := websocket.NewHub()
	go wsHub.Run()
	log.Println("WebSocket hub started")

	router := setupRouter(cfg, db, redisClient, wsHub,
		userService, agentService, operationService, assignmentService,
		reportService, componentService, activityService, chatService,
		statsService)

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Tactical Operations Server listening on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	log.Println("Server exited")
}

func setupRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, wsHub *websocket.Hub,
	userService *services.UserService, agentService *services.AgentService,
	operationService *services.OperationService, assignmentService *services.AssignmentService,
	reportService *services.ReportService, componentService *services.ComponentService,
	activityService *services.ActivityService, chatService *services.ChatService,
	statsService *services.StatsService) *gin.Engine {

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))

	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(cfg.Security.AllowedOrigins) == 1 && cfg.Security.AllowedOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}
	corsConfig.AllowHeaders = []string{
		"Origin", "Content-Length", "Content-Type", "X-Client-ID",
	}
	corsConfig.AllowMethods = []string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS",
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
			"service":   "Tactical Operations Server",
			"uptime":    time.Since(startTime).Seconds(),
			"databases": database.HealthCheck(db, redisClient),
		})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.HandleWebSocket(wsHub, c.Writer, c.Request)
	})

	apiRouter := router.Group("/api/v1")
	{
		rateLimiter := middleware.NewRateLimiter()
		apiRouter.Use(rateLimiter.Limit(cfg.Security.RateLimit, time.Minute))
		apiRouter.Use(middleware.RequireJSON())

		userRouter := apiRouter.Group("/users")
		{
			userHandler := api.NewUserHandler(userService, wsHub)
			userRouter.GET("", userHandler.List)
			userRouter.POST("", userHandler.Create)
			userRouter.GET("/:id", userHandler.Get)
			userRouter.PUT("/:id", userHandler.Update)
			userRouter.DELETE("/:id", userHandler.Delete)
		}

		agentRouter := apiRouter.Group("/agents")
		{
			agentHandler := api.NewAgentHandler(agentService, wsHub)
			agentRouter.GET("", agentHandler.List)
			agentRouter.POST("", agentHandler.Create)
			agentRouter.GET("/:id", agentHandler.Get)
			agentRouter.PUT("/:id", agentHandler.Update)
			agentRouter.DELETE("/:id", agentHandler.Delete)
		}

		operationRouter := apiRouter.Group("/operations")
		{
			operationHandler := api.NewOperationHandler(operationService, assignmentService, wsHub)
			operationRouter.GET("", operationHandler.List)
			operationRouter.POST("", operationHandler.Create)
			operationRouter.GET("/:id", operationHandler.Get)
			operationRouter.PUT("/:id", operationHandler.Update)
			operationRouter.DELETE("/:id", operationHandler.Delete)
			operationRouter.POST("/:id/agents", operationHandler.AssignAgent)
			operationRouter.GET("/:id/agents", operationHandler.ListAgents)
			operationRouter.DELETE("/:id/agents/:agentRef", operationHandler.UnassignAgent)
		}

		reportRouter := apiRouter.Group("/intelligence-reports")
		{
			reportHandler := api.NewReportHandler(reportService, wsHub)
			reportRouter.GET("", reportHandler.List)
			reportRouter.POST("", reportHandler.Create)
			reportRouter.GET("/:id", reportHandler.Get)
			reportRouter.PUT("/:id", reportHandler.Update)
			reportRouter.DELETE("/:id", reportHandler.Delete)
		}

		componentRouter := apiRouter.Group("/system-components")
		{
			componentHandler := api.NewComponentHandler(componentService, wsHub)
			componentRouter.GET("", componentHandler.List)
			componentRouter.POST("", componentHandler.Create)
			componentRouter.GET("/:id", componentHandler.Get)
			componentRouter.PUT("/:id", componentHandler.Update)
			componentRouter.DELETE("/:id", componentHandler.Delete)
		}

		activityRouter := apiRouter.Group("/activity-logs")
		{
			activityHandler := api.NewActivityHandler(activityService, wsHub)
			activityRouter.GET("", activityHandler.List)
			activityRouter.POST("", activityHandler.Create)
			activityRouter.GET("/:id", activityHandler.Get)
			activityRouter.PUT("/:id", activityHandler.Update)
			activityRouter.DELETE("/:id", activityHandler.Delete)
		}

		chatRouter := apiRouter.Group("/chat-messages")
		{
			chatHandler := api.NewChatHandler(chatService, wsHub)
			chatRouter.GET("", chatHandler.List)
			chatRouter.POST("", chatHandler.Create)
			chatRouter.GET("/:id", chatHandler.Get)
			chatRouter.PUT("/:id", chatHandler.Update)
			chatRouter.DELETE("/:id", chatHandler.Delete)
		}

		statsRouter := apiRouter.Group("/system-stats")
		{
			statsHandler := api.NewStatsHandler(statsService, wsHub)
			statsRouter.GET("", statsHandler.List)
			statsRouter.GET("/latest", statsHandler.Latest)
			statsRouter.POST("/snapshot", statsHandler.Snapshot)
			statsRouter.GET("/:id", statsHandler.Get)
			statsRouter.DELETE("/:id", statsHandler.Delete)
		}

		dashboardRouter := apiRouter.Group("/dashboard")
		{
			dashboardHandler := api.NewDashboardHandler(statsService, activityService, componentService, operationService)
			dashboardRouter.GET("/overview", dashboardHandler.Overview)
		}
	}

	return router
}
