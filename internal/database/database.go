package database

import (
	"context"
	"fmt"
	"time"

	"tactical-server/internal/config"
	"tactical-server/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitPostgreSQL opens the PostgreSQL connection, configures the pool and
// runs migrations for every tracked model.
func InitPostgreSQL(cfg config.PostgreSQLConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error; err != nil {
		return nil, fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

// InitRedis opens the Redis connection used for stats caching.
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}

// AutoMigrate migrates every tracked model. Order matters: referenced tables
// migrate before the tables holding their foreign keys.
func AutoMigrate(db *gorm.DB) error {
	tracked := []interface{}{
		&models.User{},
		&models.Agent{},
		&models.Operation{},
		&models.OperationAgent{},
		&models.IntelligenceReport{},
		&models.SystemComponent{},
		&models.ActivityLog{},
		&models.ChatMessage{},
		&models.SystemStats{},
	}

	for _, model := range tracked {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	return nil
}

// HealthCheck reports the state of every backing store for the health
// endpoint. A nil redisClient reports as disabled rather than an error.
func HealthCheck(db *gorm.DB, redisClient *redis.Client) map[string]interface{} {
	health := make(map[string]interface{})
	ctx := context.Background()

	sqlDB, err := db.DB()
	if err != nil {
		health["postgresql"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else if err := sqlDB.Ping(); err != nil {
		health["postgresql"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		stats := sqlDB.Stats()
		health["postgresql"] = map[string]interface{}{
			"status":           "healthy",
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
		}
	}

	if redisClient == nil {
		health["redis"] = map[string]interface{}{"status": "disabled"}
	} else if _, err := redisClient.Ping(ctx).Result(); err != nil {
		health["redis"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		health["redis"] = map[string]interface{}{"status": "healthy"}
	}

	return health
}
