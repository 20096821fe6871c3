package graph

import (
	"context"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"staffhub/internal/auth"
	apperrors "staffhub/internal/errors"
	"staffhub/internal/model"
	"staffhub/internal/service"
)

// Resolver composes the services behind the GraphQL operation set. Each
// resolver checks authorization itself before touching any data.
type Resolver struct {
	Auth      service.AuthService
	Employees service.EmployeeService
	Dashboard service.DashboardService
}

// requireUser returns the session user or an AuthenticationError.
func requireUser(ctx context.Context) (*model.User, error) {
	u := auth.UserFrom(ctx)
	if u == nil {
		return nil, apperrors.NewAuthentication("Not authenticated")
	}
	return u, nil
}

// requireAdmin returns the session user if it holds the ADMIN role.
func requireAdmin(ctx context.Context, action string) (*model.User, error) {
	u, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if u.Role != model.RoleAdmin {
		return nil, apperrors.NewForbidden("Not authorized to " + action)
	}
	return u, nil
}

// parseEmployeeID parses an ID argument. An unparseable id cannot reference
// a record, so it reports the same way as a missing one.
func parseEmployeeID(args map[string]interface{}, key string) (uuid.UUID, error) {
	id, err := uuid.Parse(stringArg(args, key))
	if err != nil {
		return uuid.Nil, apperrors.NewUserInput("Employee not found")
	}
	return id, nil
}

// NewSchema builds the executable schema over r.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"me": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, err := requireUser(p.Context)
					if err != nil {
						return nil, err
					}
					return r.Auth.Me(p.Context, u.ID)
				},
			},
			"dashboardStats": &graphql.Field{
				Type: graphql.NewNonNull(dashboardStatsType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireUser(p.Context); err != nil {
						return nil, err
					}
					return r.Dashboard.Stats(p.Context)
				},
			},
			"getEmployees": &graphql.Field{
				Type: graphql.NewNonNull(employeePageType),
				Args: graphql.FieldConfigArgument{
					"page":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 1},
					"limit":     &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 10},
					"filter":    &graphql.ArgumentConfig{Type: employeeFilterInputType},
					"sortBy":    &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "name"},
					"sortOrder": &graphql.ArgumentConfig{Type: sortOrderEnum, DefaultValue: "ASC"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireUser(p.Context); err != nil {
						return nil, err
					}
					params := service.ListParams{
						Page:      intArgOr(p.Args, "page", 1),
						Limit:     intArgOr(p.Args, "limit", 10),
						SortBy:    stringArgOr(p.Args, "sortBy", "name"),
						SortOrder: stringArgOr(p.Args, "sortOrder", "ASC"),
					}
					if filter, ok := p.Args["filter"].(map[string]interface{}); ok {
						params.Filter = employeeFilterFromArgs(filter)
					}
					return r.Employees.List(p.Context, params)
				},
			},
			"getEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireUser(p.Context); err != nil {
						return nil, err
					}
					id, err := parseEmployeeID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					return r.Employees.Get(p.Context, id)
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"register": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(registerInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input, _ := p.Args["input"].(map[string]interface{})
					token, err := r.Auth.Register(p.Context, service.RegisterInput{
						Name:     stringArg(input, "name"),
						Email:    stringArg(input, "email"),
						Password: stringArg(input, "password"),
						Role:     stringArg(input, "role"),
					})
					if err != nil {
						return nil, err
					}
					return authPayload{Token: token}, nil
				},
			},
			"login": &graphql.Field{
				Type: graphql.NewNonNull(authPayloadType),
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					token, err := r.Auth.Login(p.Context, stringArg(p.Args, "email"), stringArg(p.Args, "password"))
					if err != nil {
						return nil, err
					}
					return authPayload{Token: token}, nil
				},
			},
			"updateProfile": &graphql.Field{
				Type: graphql.NewNonNull(userType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProfileInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, err := requireUser(p.Context)
					if err != nil {
						return nil, err
					}
					input, _ := p.Args["input"].(map[string]interface{})
					return r.Auth.UpdateProfile(p.Context, u.ID, service.UpdateProfileInput{
						Name:  optString(input, "name"),
						Email: optString(input, "email"),
					})
				},
			},
			"changePassword": &graphql.Field{
				Type: graphql.NewNonNull(changePasswordResultType),
				Args: graphql.FieldConfigArgument{
					"currentPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"newPassword":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					u, err := requireUser(p.Context)
					if err != nil {
						return nil, err
					}
					return r.Auth.ChangePassword(p.Context, u.ID,
						stringArg(p.Args, "currentPassword"), stringArg(p.Args, "newPassword"))
				},
			},
			"createEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(employeeInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireAdmin(p.Context, "create employees"); err != nil {
						return nil, err
					}
					input, _ := p.Args["input"].(map[string]interface{})
					return r.Employees.Create(p.Context, employeeInputFromArgs(input))
				},
			},
			"updateEmployee": &graphql.Field{
				Type: graphql.NewNonNull(employeeType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(employeeInputType)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireAdmin(p.Context, "update employees"); err != nil {
						return nil, err
					}
					id, err := parseEmployeeID(p.Args, "id")
					if err != nil {
						return nil, err
					}
					input, _ := p.Args["input"].(map[string]interface{})
					return r.Employees.Update(p.Context, id, employeeInputFromArgs(input))
				},
			},
			"deleteEmployee": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if _, err := requireAdmin(p.Context, "delete employees"); err != nil {
						return nil, err
					}
					id, err := uuid.Parse(stringArg(p.Args, "id"))
					if err != nil {
						// Nothing can match an unparseable id.
						return false, nil
					}
					return r.Employees.Delete(p.Context, id)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
