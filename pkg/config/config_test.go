package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg := fromViper(viper.New())

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, 10, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 30, cfg.Inventory.ExpiryWindowDays)
	assert.Equal(t, 3, cfg.Inventory.MaxRetries)
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.True(t, cfg.DB.AutoMigrate)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestFromViper_Sobrescrituras(t *testing.T) {
	v := viper.New()
	v.Set("STORE_DRIVER", "Memory")
	v.Set("LOW_STOCK_THRESHOLD", "5")
	v.Set("KAFKA_BROKERS", "k1:9092, k2:9092,")
	v.Set("DB_AUTO_MIGRATE", "false")
	v.Set("HTTP_PORT", "not-a-number")

	cfg := fromViper(v)

	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.False(t, cfg.DB.AutoMigrate)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}

func TestValidate_Reglas(t *testing.T) {
	cfg := fromViper(viper.New())
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.JWT.Secret = "secreto"
	require.NoError(t, cfg.Validate())

	cfg.Inventory.LowStockThreshold = 0
	require.NoError(t, cfg.Validate())
	cfg.Inventory.LowStockThreshold = -1
	require.Error(t, cfg.Validate())
	cfg.Inventory.LowStockThreshold = 10

	cfg.Store.Driver = "mongo"
	require.Error(t, cfg.Validate())
}

func TestDBConfig_ConnectionStringPrefiereURL(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "stock", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/stock?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}
