package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"laboratorio_dental/internal/adapter/http/handlers"
	"laboratorio_dental/internal/adapter/http/handlers/mocks"
	"laboratorio_dental/internal/domain/entities"
	"laboratorio_dental/internal/infrastructure/auth"
	"laboratorio_dental/internal/infrastructure/config"
	"laboratorio_dental/internal/infrastructure/logging"
	"laboratorio_dental/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type tokenTable map[string]auth.Principal

func (t tokenTable) Parse(token string) (auth.Principal, error) {
	p, ok := t[token]
	if !ok {
		return auth.Principal{}, errors.New("unknown token")
	}
	return p, nil
}

var testTokens = tokenTable{
	"admin-token":    {Username: "admin", Role: entities.RoleAdmin},
	"operador-token": {Username: "luis", Role: entities.RoleOperador},
}

type fixture struct {
	router        *gin.Engine
	orders        *mocks.MockIOrderUseCase
	notifications *mocks.MockINotificationUseCase
	auth          *mocks.MockIAuthUseCase
	sweeps        *mocks.MockISweepUseCase
}

func newFixture(t *testing.T, cfg *config.Config) fixture {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	f := fixture{
		orders:        mocks.NewMockIOrderUseCase(ctrl),
		notifications: mocks.NewMockINotificationUseCase(ctrl),
		auth:          mocks.NewMockIAuthUseCase(ctrl),
		sweeps:        mocks.NewMockISweepUseCase(ctrl),
	}
	doctors := mocks.NewMockIDoctorUseCase(ctrl)
	f.router = NewRouter(cfg, logging.New(&strings.Builder{}, false), Handlers{
		Orders:        handlers.NewOrderHandler(f.orders, doctors),
		Ledger:        handlers.NewLedgerHandler(mocks.NewMockIPaymentUseCase(ctrl), mocks.NewMockINoteUseCase(ctrl)),
		Doctors:       handlers.NewDoctorHandler(doctors),
		Notifications: handlers.NewNotificationHandler(f.notifications),
		Auth:          handlers.NewAuthHandler(f.auth),
		Sweeps:        handlers.NewSweepHandler(f.sweeps),
	}, testTokens)
	return f
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowedOrigins: []string{"http://localhost:3000"},
		LoginRatePerSecond: 0.001,
		LoginRateBurst:     1,
	}
}

func call(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicAndPrivate(t *testing.T) {
	f := newFixture(t, testConfig())

	w := call(f.router, http.MethodGet, "/v1/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusUnauthorized, call(f.router, http.MethodGet, "/v1/orders", "", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call(f.router, http.MethodGet, "/v1/orders", "forged", "").Code)

	f.orders.EXPECT().List(gomock.Any(), usecase.OrderFilter{}).Return(nil, nil)
	assert.Equal(t, http.StatusOK, call(f.router, http.MethodGet, "/v1/orders", "operador-token", "").Code)
}

func TestRouter_OperadorCannotDelete(t *testing.T) {
	f := newFixture(t, testConfig())

	gated := []struct{ method, path string }{
		{http.MethodDelete, "/v1/orders/o-1"},
		{http.MethodDelete, "/v1/orders/o-1/payments/p-1"},
		{http.MethodDelete, "/v1/orders/o-1/notes/n-1"},
		{http.MethodDelete, "/v1/doctors/d-1"},
		{http.MethodDelete, "/v1/notifications/n-1"},
		{http.MethodDelete, "/v1/notifications"},
		{http.MethodPost, "/v1/users"},
		{http.MethodPost, "/v1/admin/sweeps/unpaid"},
		{http.MethodPost, "/v1/admin/sweeps/purge"},
	}
	for _, g := range gated {
		w := call(f.router, g.method, g.path, "operador-token", "")
		assert.Equal(t, http.StatusForbidden, w.Code, "%s %s", g.method, g.path)
	}

	f.orders.EXPECT().Delete(gomock.Any(), "o-1").Return(nil)
	assert.Equal(t, http.StatusNoContent, call(f.router, http.MethodDelete, "/v1/orders/o-1", "admin-token", "").Code)

	f.notifications.EXPECT().Clear(gomock.Any()).Return(0, nil)
	assert.Equal(t, http.StatusOK, call(f.router, http.MethodDelete, "/v1/notifications", "admin-token", "").Code)

	f.sweeps.EXPECT().PurgeStaleOrders(gomock.Any()).Return(1, nil)
	assert.Equal(t, http.StatusOK, call(f.router, http.MethodPost, "/v1/admin/sweeps/purge", "admin-token", "").Code)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	f := newFixture(t, testConfig())

	f.auth.EXPECT().Login(gomock.Any(), "ana", "wrong-pass").Return(usecase.LoginResult{}, usecase.ErrInvalidCredentials)

	body := `{"username":"ana","password":"wrong-pass"}`
	assert.Equal(t, http.StatusUnauthorized, call(f.router, http.MethodPost, "/v1/auth/login", "", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, call(f.router, http.MethodPost, "/v1/auth/login", "", body).Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	f := newFixture(t, testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/v1/orders", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCorsConfig(t *testing.T) {
	assert.True(t, corsConfig(nil).AllowAllOrigins)
	assert.True(t, corsConfig([]string{"*"}).AllowAllOrigins)

	c := corsConfig([]string{"https://lab.example.com"})
	assert.False(t, c.AllowAllOrigins)
	assert.Equal(t, []string{"https://lab.example.com"}, c.AllowOrigins)
}

func TestRouter_SwaggerOnlyOutsideProduction(t *testing.T) {
	cfg := testConfig()
	cfg.IsProduction = true
	f := newFixture(t, cfg)
	gin.SetMode(gin.TestMode)

	assert.Equal(t, http.StatusNotFound, call(f.router, http.MethodGet, "/swagger/index.html", "", "").Code)
}
