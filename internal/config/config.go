package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	StoreDriver string // memory / postgres
	SeedData    bool   // 起動時に初期データを入れる

	DatabaseURL      string // あれば最優先
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	LowStockThreshold    int64
	RestoreStockOnCancel bool

	LogLevel  string
	LogPretty bool

	KafkaBrokers    []string // 空ならイベントは送らない
	KafkaOrderTopic string

	BcryptCost int
}

// Loadは環境変数（.envがあれば先に読む）
func Load() (Config, error) {
	//.envは無くてもよい
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv はgetenvから設定を組み立てて検証する
func FromEnv(getenv func(string) string) (Config, error) {
	e := envReader{getenv: getenv}

	cfg := Config{
		Port:  e.str("PORT", "8080"),
		GoEnv: e.str("GO_ENV", "dev"),

		StoreDriver: strings.ToLower(e.str("STORE_DRIVER", StoreMemory)),

		DatabaseURL:      e.str("DATABASE_URL", ""),
		PostgresUser:     e.str("POSTGRES_USER", "postgres"),
		PostgresPassword: e.str("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       e.str("POSTGRES_DB", "app"),
		PostgresHost:     e.str("POSTGRES_HOST", "localhost"),
		PostgresPort:     e.integer("POSTGRES_PORT", 5432),
		PostgresSSLMode:  e.str("POSTGRES_SSLMODE", "disable"),

		LowStockThreshold:    int64(e.integer("LOW_STOCK_THRESHOLD", 10)),
		RestoreStockOnCancel: e.boolean("RESTORE_STOCK_ON_CANCEL", false),

		LogLevel:  e.str("LOG_LEVEL", "info"),
		LogPretty: e.boolean("LOG_PRETTY", false),

		KafkaBrokers:    e.list("KAFKA_BROKERS"),
		KafkaOrderTopic: e.str("KAFKA_ORDER_TOPIC", "orders"),

		BcryptCost: e.integer("BCRYPT_COST", 10),
	}
	//メモリ実装は毎回空で起動するので既定で初期データを入れる
	cfg.SeedData = e.boolean("SEED_DATA", cfg.StoreDriver == StoreMemory)

	if e.err != nil {
		return Config{}, e.err
	}

	//値チェック
	switch cfg.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		return Config{}, errors.Errorf("STORE_DRIVER must be memory or postgres: %q", cfg.StoreDriver)
	}
	if cfg.LowStockThreshold < 0 {
		return Config{}, errors.New("LOW_STOCK_THRESHOLD must be >= 0")
	}
	if cfg.KafkaOrderTopic == "" {
		return Config{}, errors.New("KAFKA_ORDER_TOPIC is required")
	}

	return cfg, nil
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// 最初のエラーだけ覚えておく
type envReader struct {
	getenv func(string) string
	err    error
}

func (e *envReader) str(key, def string) string {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	return v
}

func (e *envReader) integer(key string, def int) int {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil && e.err == nil {
		e.err = errors.Wrapf(err, "%s must be number", key)
	}
	return i
}

func (e *envReader) boolean(key string, def bool) bool {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil && e.err == nil {
		e.err = errors.Wrapf(err, "%s must be true/false", key)
	}
	return b
}

func (e *envReader) list(key string) []string {
	var out []string
	for _, s := range strings.Split(e.getenv(key), ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
