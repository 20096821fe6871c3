package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"staffhub/internal/auth"
	"staffhub/internal/graph"
	"staffhub/internal/model"
	"staffhub/internal/repository"
	"staffhub/internal/service"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Employee{}))

	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	authService := service.NewAuthService(userRepo, auth.NewJWTService("test-secret", time.Hour))

	schema, err := graph.NewSchema(&graph.Resolver{
		Auth:      authService,
		Employees: service.NewEmployeeService(employeeRepo, nil),
		Dashboard: service.NewDashboardService(employeeRepo, nil),
	})
	require.NoError(t, err)

	e := echo.New()
	Register(e, authService, schema)
	return e
}

type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string         `json:"message"`
		Extensions map[string]any `json:"extensions"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, e *echo.Echo, query, token string) graphqlResponse {
	t.Helper()
	body, err := json.Marshal(map[string]string{"query": query})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp graphqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGraphQLEndpointBearerFlow(t *testing.T) {
	e := newTestServer(t)

	resp := postGraphQL(t, e,
		`mutation { register(input: {name: "Router Test", email: "router@example.com", password: "password123"}) { token } }`, "")
	require.Empty(t, resp.Errors)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["register"], &payload))
	require.NotEmpty(t, payload.Token)

	t.Run("token in Authorization header authenticates", func(t *testing.T) {
		resp := postGraphQL(t, e, `{ me { email } }`, payload.Token)
		require.Empty(t, resp.Errors)

		var me struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(resp.Data["me"], &me))
		assert.Equal(t, "router@example.com", me.Email)
	})

	t.Run("no header means no user", func(t *testing.T) {
		resp := postGraphQL(t, e, `{ me { email } }`, "")
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "Not authenticated", resp.Errors[0].Message)
		assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
	})

	t.Run("garbage token is ignored, not rejected", func(t *testing.T) {
		resp := postGraphQL(t, e, `{ me { email } }`, "not-a-jwt")
		require.NotEmpty(t, resp.Errors)
		assert.Equal(t, "UNAUTHENTICATED", resp.Errors[0].Extensions["code"])
	})
}

func TestHealthAndRoot(t *testing.T) {
	e := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Employee Management System API", rec.Body.String())
}

func TestBearerTokenParsing(t *testing.T) {
	cases := map[string]string{
		"":                 "",
		"Bearer abc.def":   "abc.def",
		"bearer abc.def":   "abc.def",
		"Basic dXNlcg==":   "",
		"Bearerabc":        "",
		"Bearer  abc.def ": "abc.def",
	}
	for header, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		assert.Equal(t, want, bearerToken(req), "header %q", header)
	}
}
