package usecase

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	//404
	ErrNotFound = errors.New("not found")
	//400 入力不正
	ErrValidation = errors.New("validation error")
	//400 注文時の在庫不足
	ErrInsufficientStock = errors.New("insufficient stock")
	//400 注文時に商品が無い/非公開
	ErrProductNotFound = errors.New("product not found")
	//409 一意制約
	ErrConflict = errors.New("conflict")
	//500
	ErrInternal = errors.New("internal error")
)

// 項目ごとのエラー
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HTTPError はhandlerがそのままレスポンスにできるエラー。
// Err にはerrors.Isで判定できる種別（ErrNotFound等）が入る。
type HTTPError struct {
	Status  int
	Message string
	Details []FieldError
	Err     error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
		Err:     kindOf(status),
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

func kindOf(status int) error {
	switch status {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusConflict:
		return ErrConflict
	}
	return ErrInternal
}

func notFound(message string) error {
	return &HTTPError{Status: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func invalid(message string, details ...FieldError) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Details: details, Err: ErrValidation}
}

func conflict(message string) error {
	return &HTTPError{Status: http.StatusConflict, Message: message, Err: ErrConflict}
}

func insufficientStock(productName string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "Insufficient stock for " + productName,
		Err:     ErrInsufficientStock,
	}
}

func productNotFound(productID string) error {
	return &HTTPError{
		Status:  http.StatusBadRequest,
		Message: "Product " + productID + " not found",
		Err:     ErrProductNotFound,
	}
}

// 原因はErrに残す（ログ用）。クライアントには固定文言だけ返す
func internal(op string, cause error) error {
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Message: "internal error",
		Err:     errors.Wrapf(ErrInternal, "%s: %v", op, cause),
	}
}

// 項目エラーをまとめて1つのValidationErrorにする
type fieldErrors []FieldError

func (f *fieldErrors) add(field, message string) {
	*f = append(*f, FieldError{Field: field, Message: message})
}

func (f fieldErrors) err(message string) error {
	if len(f) == 0 {
		return nil
	}
	return invalid(message, f...)
}
