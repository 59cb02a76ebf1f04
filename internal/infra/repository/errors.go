package repository

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// TranslateError: true で開いたDBなら一意制約違反はErrDuplicatedKeyになる
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// uuid列に不正な文字列を渡すとpostgresがエラーにするので、先に弾いてNotFound扱いにする
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
