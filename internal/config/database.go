package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ConnectionPoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

func DefaultConnectionPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    20,
		MaxIdleConns:    5,
		ConnMaxLifetime: 1 * time.Hour,
		ConnectTimeout:  5 * time.Second,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDurationWithDefault returns environment variable as duration or default if not set
func getEnvDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getMasterConfig loads the master registry database configuration from
// environment variables.
func getMasterConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnvWithDefault("MASTER_DB_HOST", "localhost"),
		Port:     getEnvWithDefault("MASTER_DB_PORT", "5432"),
		User:     getEnvWithDefault("MASTER_DB_USER", "postgres"),
		Password: getEnvWithDefault("MASTER_DB_PASSWORD", ""),
		DBName:   getEnvWithDefault("MASTER_DB_NAME", "shop_master"),
		SSLMode:  getEnvWithDefault("MASTER_DB_SSL_MODE", "disable"),
	}
}

// getServerAdminConfig loads the server-level administrative login used to
// create and drop physical tenant databases. These credentials are supplied
// out-of-band and are distinct from each tenant's own application
// credentials; the connection targets the maintenance database because the
// databases it manages may not exist yet.
func getServerAdminConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnvWithDefault("ADMIN_DB_HOST", getEnvWithDefault("MASTER_DB_HOST", "localhost")),
		Port:     getEnvWithDefault("ADMIN_DB_PORT", "5432"),
		User:     getEnvWithDefault("ADMIN_DB_USER", "postgres"),
		Password: getEnvWithDefault("ADMIN_DB_PASSWORD", ""),
		DBName:   getEnvWithDefault("ADMIN_DB_NAME", "postgres"),
		SSLMode:  getEnvWithDefault("ADMIN_DB_SSL_MODE", "disable"),
	}
}

// GetTenantDBDefaults loads the defaults applied when a tenant-create
// request omits parts of the connection descriptor.
func GetTenantDBDefaults() *DatabaseConfig {
	return &DatabaseConfig{
		Host:     getEnvWithDefault("TENANT_DB_HOST", getEnvWithDefault("MASTER_DB_HOST", "localhost")),
		Port:     getEnvWithDefault("TENANT_DB_PORT", "5432"),
		User:     getEnvWithDefault("TENANT_DB_USER", "postgres"),
		Password: getEnvWithDefault("TENANT_DB_PASSWORD", ""),
	}
}

// GetTenantPoolConfig loads the connection pool bounds applied to every
// tenant pool built by the pool factory.
func GetTenantPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    getEnvIntWithDefault("TENANT_DB_MAX_OPEN_CONNS", 20),
		MaxIdleConns:    getEnvIntWithDefault("TENANT_DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDurationWithDefault("TENANT_DB_CONN_MAX_LIFETIME", 1*time.Hour),
		ConnectTimeout:  getEnvDurationWithDefault("TENANT_DB_CONNECT_TIMEOUT", 5*time.Second),
	}
}

// getMasterPoolConfig loads the connection pool bounds for the master
// registry connection.
func getMasterPoolConfig() *ConnectionPoolConfig {
	return &ConnectionPoolConfig{
		MaxOpenConns:    getEnvIntWithDefault("MASTER_DB_MAX_OPEN_CONNS", 50),
		MaxIdleConns:    getEnvIntWithDefault("MASTER_DB_MAX_IDLE_CONNS", 10),
		ConnMaxLifetime: getEnvDurationWithDefault("MASTER_DB_CONN_MAX_LIFETIME", 1*time.Hour),
		ConnectTimeout:  getEnvDurationWithDefault("MASTER_DB_CONNECT_TIMEOUT", 5*time.Second),
	}
}

// BuildDSN creates a PostgreSQL connection string from the configuration.
func (c *DatabaseConfig) BuildDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// configureConnectionPool applies connection pool settings to the database connection
func configureConnectionPool(gormDB *gorm.DB, poolConfig *ConnectionPoolConfig) error {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(poolConfig.MaxOpenConns)
	sqlDB.SetMaxIdleConns(poolConfig.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(poolConfig.ConnMaxLifetime)

	return nil
}

// NewConnection creates a GORM database connection with connection pool
// tuning. It is used for the master registry, the server-admin connection
// and every tenant pool built by the pool factory.
func NewConnection(config *DatabaseConfig, poolConfig *ConnectionPoolConfig) (*gorm.DB, error) {
	dsn := config.BuildDSN()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := configureConnectionPool(db, poolConfig); err != nil {
		return nil, fmt.Errorf("failed to configure connection pool: %w", err)
	}

	return db, nil
}

// NewMasterDatabase connects to the master registry database.
func NewMasterDatabase() (*gorm.DB, error) {
	return NewConnection(getMasterConfig(), getMasterPoolConfig())
}

// NewServerAdminConnection connects with the server-admin login used for
// CREATE DATABASE / DROP DATABASE statements.
func NewServerAdminConnection() (*gorm.DB, error) {
	return NewConnection(getServerAdminConfig(), DefaultConnectionPoolConfig())
}

// CloseDB closes the underlying sql.DB of a GORM handle.
func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
