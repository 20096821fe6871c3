package graph

import (
	"github.com/graphql-go/graphql"

	"staffhub/internal/model"
)

// authPayload is the register/login result.
type authPayload struct {
	Token string `json:"token"`
}

// employeeFromSource unwraps an employee resolver source. List fields hand
// the default resolver values, single-record fields hand it pointers.
func employeeFromSource(source interface{}) *model.Employee {
	switch e := source.(type) {
	case *model.Employee:
		return e
	case model.Employee:
		return &e
	}
	return nil
}

var roleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Role",
	Values: graphql.EnumValueConfigMap{
		"ADMIN":    &graphql.EnumValueConfig{Value: model.RoleAdmin},
		"EMPLOYEE": &graphql.EnumValueConfig{Value: model.RoleEmployee},
	},
})

var sortOrderEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "SortOrder",
	Values: graphql.EnumValueConfigMap{
		"ASC":  &graphql.EnumValueConfig{Value: "ASC"},
		"DESC": &graphql.EnumValueConfig{Value: "DESC"},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if u, ok := p.Source.(*model.User); ok {
					return u.ID.String(), nil
				}
				return nil, nil
			},
		},
		"name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"role":      &graphql.Field{Type: graphql.NewNonNull(roleEnum)},
		"createdAt": &graphql.Field{Type: graphql.DateTime},
		"updatedAt": &graphql.Field{Type: graphql.DateTime},
	},
})

var employeeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Employee",
	Fields: graphql.Fields{
		"id": &graphql.Field{
			Type: graphql.NewNonNull(graphql.ID),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if e := employeeFromSource(p.Source); e != nil {
					return e.ID.String(), nil
				}
				return nil, nil
			},
		},
		"name":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.Field{Type: graphql.String},
		"age": &graphql.Field{
			Type: graphql.Int,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if e := employeeFromSource(p.Source); e != nil && e.Age != nil {
					return *e.Age, nil
				}
				return nil, nil
			},
		},
		"class":        &graphql.Field{Type: graphql.String},
		"attendance":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"subjects":     &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"department":   &graphql.Field{Type: graphql.String},
		"position":     &graphql.Field{Type: graphql.String},
		"joinDate":     &graphql.Field{Type: graphql.DateTime},
		"address":      &graphql.Field{Type: graphql.String},
		"bio":          &graphql.Field{Type: graphql.String},
		"education":    &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"skills":       &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"performance":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"notes":        &graphql.Field{Type: graphql.String},
		"profileImage": &graphql.Field{Type: graphql.String},
		"createdAt":    &graphql.Field{Type: graphql.DateTime},
		"updatedAt":    &graphql.Field{Type: graphql.DateTime},
	},
})

var employeePageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "EmployeePage",
	Fields: graphql.Fields{
		"employees":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(employeeType)))},
		"totalCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPages": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var dashboardStatsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "DashboardStats",
	Fields: graphql.Fields{
		"totalEmployees":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"newEmployees":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"attendanceRate":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"departmentsCount": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var changePasswordResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ChangePasswordResult",
	Fields: graphql.Fields{
		"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var registerInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "RegisterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"password": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"role":     &graphql.InputObjectFieldConfig{Type: roleEnum},
	},
})

var updateProfileInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateProfileInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var employeeInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "EmployeeInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":         &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"age":          &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"class":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"attendance":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"subjects":     &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"department":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"position":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"joinDate":     &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
		"address":      &graphql.InputObjectFieldConfig{Type: graphql.String},
		"bio":          &graphql.InputObjectFieldConfig{Type: graphql.String},
		"education":    &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"skills":       &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		"performance":  &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"notes":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"profileImage": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var employeeFilterInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "EmployeeFilterInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"search":        &graphql.InputObjectFieldConfig{Type: graphql.String},
		"department":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"class":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		"minAge":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"maxAge":        &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"minAttendance": &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"maxAttendance": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})
