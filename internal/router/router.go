package router

import (
	"net/http"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"staffhub/internal/auth"
	"staffhub/internal/service"
)

// Register wires routes and middleware. The bearer middleware never fails a
// request: an absent, malformed, or expired token just means the resolvers
// see no user.
func Register(e *echo.Echo, authService service.AuthService, schema graphql.Schema) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	gql := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	graphqlEndpoint := func(c echo.Context) error {
		req := c.Request()
		ctx := req.Context()
		if token := bearerToken(req); token != "" {
			if u := authService.Authenticate(ctx, token); u != nil {
				ctx = auth.WithUser(ctx, u)
			}
		}
		gql.ContextHandler(ctx, c.Response(), req)
		return nil
	}

	e.POST("/graphql", graphqlEndpoint)
	e.GET("/graphql", graphqlEndpoint) // GraphiQL

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Employee Management System API")
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(req *http.Request) string {
	header := req.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
