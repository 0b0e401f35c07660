package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sdtech_backend/internal/database"
	"sdtech_backend/internal/identity"
	"sdtech_backend/internal/notifications"
	"sdtech_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, opts Options) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db := database.NewSQLDB(conn)
	engine := NewEngine(nil)
	Setup(engine, Dependencies{
		DB:       db,
		Notifier: notifications.NewBus(),
		Identity: identity.NewLocalProvider(db, repositories.NewIdentityRepository(db)),
	}, opts)
	return engine, mock
}

func serve(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(method, path, nil))
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error.Code
}

func TestRouter_Health(t *testing.T) {
	engine, mock := newTestEngine(t, Options{})
	mock.ExpectPing()

	w := serve(engine, http.MethodGet, "/api/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"backend":"postgres"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_UnknownRouteIsJSON404(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	w := serve(engine, http.MethodGet, "/api/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, w))
}

func TestRouter_MethodNotAllowedListsAllowedMethods(t *testing.T) {
	engine, _ := newTestEngine(t, Options{})

	w := serve(engine, http.MethodDelete, "/api/products")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, OPTIONS, POST", w.Header().Get("Allow"))
	assert.Equal(t, "METHOD_NOT_ALLOWED", errorCode(t, w))

	w = serve(engine, http.MethodPost, "/api/promotions/p1/toggle")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "OPTIONS, PATCH", w.Header().Get("Allow"))

	w = serve(engine, http.MethodPut, "/api/sales/s1")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "DELETE, GET, OPTIONS", w.Header().Get("Allow"))
}

func TestRouter_AuthGuardsDataRoutesWhenSecretSet(t *testing.T) {
	engine, mock := newTestEngine(t, Options{JWTSecret: "test-secret"})

	w := serve(engine, http.MethodGet, "/api/products")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(engine, http.MethodGet, "/api/admin/users")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	mock.ExpectPing()
	w = serve(engine, http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewEngine_RecoversFromPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := NewEngine([]string{"http://localhost:3000"})
	engine.GET("/boom", func(*gin.Context) { panic("boom") })

	w := serve(engine, http.MethodGet, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "INTERNAL_SERVER_ERROR", errorCode(t, w))
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern, path string
		want          bool
	}{
		{"/api/products", "/api/products", true},
		{"/api/products/:id", "/api/products/abc", true},
		{"/api/products/:id", "/api/products", false},
		{"/api/products/low-stock/alert", "/api/products/low-stock/alert", true},
		{"/api/products/:id", "/api/products/low-stock/alert", false},
		{"/api/promotions/:id/toggle", "/api/promotions/7/toggle", true},
		{"/static/*filepath", "/static/css/app.css", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, matchPattern(tc.pattern, tc.path), tc.pattern+" vs "+tc.path)
	}
}
