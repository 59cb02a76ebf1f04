package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/modi-mansi/ecommerce/internal/domain/service"
	"github.com/modi-mansi/ecommerce/internal/handler"
	logs "github.com/modi-mansi/ecommerce/internal/infra/log"
	"github.com/modi-mansi/ecommerce/internal/infra/memory"
	"github.com/modi-mansi/ecommerce/internal/server"
	"github.com/modi-mansi/ecommerce/internal/usecase"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// testApp はメモリストアで組んだechoをそのままhttptestで叩く
type testApp struct {
	e *echo.Echo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	logger := logs.Discard()
	clock := fixedClock{now: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)}
	st := memory.NewStore(service.UUIDGenerator{}, clock)
	repos := st.Repos()

	catalogUC := usecase.NewCatalogUsecase(repos.Products(), usecase.DefaultLowStockThreshold)
	productUC := usecase.NewProductUsecase(st, logger)
	orderUC := usecase.NewOrderUsecase(st, repos, nil, clock, logger, usecase.OrderOptions{})

	h := server.Handlers{
		Products:  handler.NewProductHandler(catalogUC, productUC),
		Orders:    handler.NewOrderHandler(orderUC),
		Cart:      handler.NewCartHandler(usecase.NewCartUsecase(st, repos)),
		Analytics: handler.NewAnalyticsHandler(usecase.NewMetricsUsecase(repos.Orders(), catalogUC)),
		Inventory: handler.NewInventoryHandler(usecase.NewInventoryUsecase(repos.Inventory())),
		Users:     handler.NewUserHandler(usecase.NewUserUsecase(repos.Users(), usecase.NewBcryptPasswordHasher(bcrypt.MinCost))),
		Health:    handler.NewHealthHandler(clock),
	}
	return &testApp{e: server.NewEcho(logger, h)}
}

func (a *testApp) doJSON(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("json encode failed: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status=%d want=%d body=%s", rec.Code, want, rec.Body.String())
	}
}

func mustDecode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("json.Unmarshal failed: %v body=%s", err, rec.Body.String())
	}
	return v
}

// 商品を作ってIDを返す
func createProduct(t *testing.T, a *testApp, sku, price string, stock int64) usecase.ProductOutput {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/api/products", map[string]any{
		"name":          "Product " + sku,
		"description":   "test product",
		"sku":           sku,
		"category":      "Electronics",
		"price":         price,
		"stockQuantity": stock,
	})
	requireStatus(t, rec, http.StatusCreated)
	return mustDecode[usecase.ProductOutput](t, rec)
}

func createUser(t *testing.T, a *testApp, username string) usecase.UserOutput {
	t.Helper()

	rec := a.doJSON(t, http.MethodPost, "/api/users", map[string]any{
		"username":  username,
		"email":     username + "@example.com",
		"password":  "password123",
		"firstName": "Test",
		"lastName":  "User",
	})
	requireStatus(t, rec, http.StatusCreated)
	return mustDecode[usecase.UserOutput](t, rec)
}
