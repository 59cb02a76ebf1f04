package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/modi-mansi/ecommerce/internal/usecase"
)

type ErrorResponse struct {
	Error   string               `json:"error"`
	Details []usecase.FieldError `json:"details,omitempty"`
}

// ErrorHandler はechoのHTTPErrorHandler。usecaseのHTTPErrorもechoのエラーも同じ形で返す
type ErrorHandler struct {
	logger *slog.Logger
}

func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

func (h *ErrorHandler) Handle(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := h.toResponse(err, c)

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, body)
	}
	if werr != nil {
		h.logger.ErrorContext(c.Request().Context(), "write error response failed", slog.Any("error", werr))
	}
}

func (h *ErrorHandler) toResponse(err error, c echo.Context) (int, ErrorResponse) {
	if he, ok := usecase.AsHTTPError(err); ok {
		if he.Status >= http.StatusInternalServerError {
			h.logInternal(c, err, he.Err)
		}
		return he.Status, ErrorResponse{Error: he.Message, Details: he.Details}
	}

	// bind失敗・ルート無し等
	var ee *echo.HTTPError
	if errors.As(err, &ee) {
		msg := http.StatusText(ee.Code)
		if s, ok := ee.Message.(string); ok && s != "" {
			msg = s
		}
		if ee.Code == http.StatusBadRequest && ee.Internal != nil {
			msg = "invalid body"
		}
		if ee.Code >= http.StatusInternalServerError {
			h.logInternal(c, err, ee.Internal)
		}
		return ee.Code, ErrorResponse{Error: msg}
	}

	//500
	h.logInternal(c, err, nil)
	return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
}

func (h *ErrorHandler) logInternal(c echo.Context, err, cause error) {
	attrs := []any{
		slog.String("method", c.Request().Method),
		slog.String("path", c.Request().URL.Path),
		slog.Any("error", err),
	}
	if cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	h.logger.ErrorContext(c.Request().Context(), "unhandled error", attrs...)
}

// 4xxはここでレスポンスにする。5xxと想定外のエラーはそのまま返してErrorHandlerでログ＋500
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok && he.Status < http.StatusInternalServerError {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message, Details: he.Details})
	}
	return err
}

// bind + validate をまとめたもの
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}
