package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, int64(10), cfg.LowStockThreshold)
	assert.False(t, cfg.RestoreStockOnCancel)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "orders", cfg.KafkaOrderTopic)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":                    "9000",
		"STORE_DRIVER":            "Postgres",
		"RESTORE_STOCK_ON_CANCEL": "true",
		"KAFKA_BROKERS":           "k1:9092, k2:9092,",
		"LOW_STOCK_THRESHOLD":     "5",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, StorePostgres, cfg.StoreDriver)
	//postgresは既定で初期データを入れない
	assert.False(t, cfg.SeedData)
	assert.True(t, cfg.RestoreStockOnCancel)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, int64(5), cfg.LowStockThreshold)
}

func TestFromEnv_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad driver":   {"STORE_DRIVER": "mysql"},
		"bad number":   {"POSTGRES_PORT": "abc"},
		"bad bool":     {"SEED_DATA": "maybe"},
		"negative low": {"LOW_STOCK_THRESHOLD": "-1"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
