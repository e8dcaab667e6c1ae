package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DB holds the database connections
type DB struct {
	Mongo    *mongo.Client
	Database *mongo.Database
	Ledger   *gorm.DB
	log      zerolog.Logger
}

// InitDB opens MongoDB and the file ledger (PostgreSQL, or SQLite when no
// PostgreSQL connection string is configured)
func InitDB(ctx context.Context, cfg *Config, log zerolog.Logger) (*DB, error) {
	mongoClient, err := initMongo(ctx, cfg.MongoURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	log.Info().Str("database", cfg.MongoDatabase).Msg("Successfully connected to MongoDB")

	var ledger *gorm.DB
	if cfg.PostgresConnStr != "" {
		ledger, err = initPostgres(cfg.PostgresConnStr)
		if err != nil {
			mongoClient.Disconnect(ctx)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		log.Info().Msg("Successfully connected to PostgreSQL")
	} else {
		ledger, err = initSQLite(cfg.SQLitePath)
		if err != nil {
			mongoClient.Disconnect(ctx)
			return nil, fmt.Errorf("failed to open SQLite ledger: %w", err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("Using SQLite file ledger")
	}

	return &DB{
		Mongo:    mongoClient,
		Database: mongoClient.Database(cfg.MongoDatabase),
		Ledger:   ledger,
		log:      log,
	}, nil
}

// initPostgres initializes the PostgreSQL database connection using GORM
func initPostgres(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

func initSQLite(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Warn)})
}

// initMongo initializes the MongoDB connection
func initMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the primary to verify connection
	if err = client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// CloseDB closes the database connections
func (db *DB) CloseDB() {
	if db.Ledger != nil {
		sqlDB, err := db.Ledger.DB()
		if err != nil {
			db.log.Error().Err(err).Msg("Error getting SQL DB from GORM")
		} else if err := sqlDB.Close(); err != nil {
			db.log.Error().Err(err).Msg("Error closing ledger connection")
		} else {
			db.log.Info().Msg("Ledger connection closed")
		}
	}

	if db.Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.Mongo.Disconnect(ctx); err != nil {
			db.log.Error().Err(err).Msg("Error closing MongoDB connection")
		} else {
			db.log.Info().Msg("MongoDB connection closed")
		}
	}
}
