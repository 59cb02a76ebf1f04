package validator

import (
	"net/http"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

// RequestValidator はechoのValidator。`validate:"..."`タグで検証し、
// 違反はフィールド単位の詳細付きValidationErrorにする
type RequestValidator struct {
	v *playground.Validate
}

func New() *RequestValidator {
	v := playground.New()
	//エラーのフィールド名はJSONの名前で返す
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return &RequestValidator{v: v}
}

func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.v.Struct(i)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate request")
	}

	details := make([]usecase.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, usecase.FieldError{
			Field:   fieldPath(fe),
			Message: message(fe),
		})
	}
	return &usecase.HTTPError{
		Status:  http.StatusBadRequest,
		Message: "Invalid request data",
		Details: details,
		Err:     usecase.ErrValidation,
	}
}

// "CreateOrderRequest.order.customerId" -> "order.customerId"
func fieldPath(fe playground.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be >= " + fe.Param()
	case "max":
		return "must be <= " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	case "email":
		return "must be a valid email"
	case "url":
		return "must be a valid URL"
	}
	return "failed on " + fe.Tag()
}
