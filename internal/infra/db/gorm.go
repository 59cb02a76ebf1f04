package db

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/modi-mansi/ecommerce/internal/domain/model"
)

// 接続情報。DatabaseURL があれば最優先で使う
type Options struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	//gormのSQLログを出すか
	Debug bool
}

func (o Options) DSN() string {
	if o.DatabaseURL != "" {
		return o.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		o.Host, o.Port, o.User, o.Password, o.Name, o.SSLMode,
	)
}

// Connect はDBに接続して *gorm.DB を返す。
func Connect(o Options, log *slog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		//一意制約違反を gorm.ErrDuplicatedKey にする
		TranslateError: true,
		Logger:         newGormSlogLogger(log, o.Debug),
	}

	gdb, err := gorm.Open(postgres.Open(o.DSN()), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return gdb, nil
}

// Migrate はテーブルと注文番号の連番を作る。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.CartItem{},
		&model.InventoryTransaction{},
	); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	if err := gdb.Exec("CREATE SEQUENCE IF NOT EXISTS order_number_seq").Error; err != nil {
		return errors.Wrap(err, "create order_number_seq")
	}
	return nil
}
