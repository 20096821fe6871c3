package graph

import (
	"time"

	"staffhub/internal/repository"
	"staffhub/internal/service"
)

// Helpers for unpacking graphql-go argument maps into typed inputs. Absent
// keys become nil so partial updates can distinguish "not provided" from
// zero values.

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}

func stringArgOr(args map[string]interface{}, key, def string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return def
}

func intArgOr(args map[string]interface{}, key string, def int) int {
	if v, ok := args[key].(int); ok {
		return v
	}
	return def
}

func optString(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok {
		return &v
	}
	return nil
}

func optInt(args map[string]interface{}, key string) *int {
	if v, ok := args[key].(int); ok {
		return &v
	}
	return nil
}

func optTime(args map[string]interface{}, key string) *time.Time {
	if v, ok := args[key].(time.Time); ok {
		return &v
	}
	return nil
}

func optStringList(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func employeeInputFromArgs(args map[string]interface{}) service.EmployeeInput {
	return service.EmployeeInput{
		Name:         stringArg(args, "name"),
		Email:        stringArg(args, "email"),
		Phone:        optString(args, "phone"),
		Age:          optInt(args, "age"),
		Class:        optString(args, "class"),
		Attendance:   optInt(args, "attendance"),
		Subjects:     optStringList(args, "subjects"),
		Department:   optString(args, "department"),
		Position:     optString(args, "position"),
		JoinDate:     optTime(args, "joinDate"),
		Address:      optString(args, "address"),
		Bio:          optString(args, "bio"),
		Education:    optStringList(args, "education"),
		Skills:       optStringList(args, "skills"),
		Performance:  optInt(args, "performance"),
		Notes:        optString(args, "notes"),
		ProfileImage: optString(args, "profileImage"),
	}
}

func employeeFilterFromArgs(args map[string]interface{}) repository.EmployeeFilter {
	return repository.EmployeeFilter{
		Search:        optString(args, "search"),
		Department:    optString(args, "department"),
		Class:         optString(args, "class"),
		MinAge:        optInt(args, "minAge"),
		MaxAge:        optInt(args, "maxAge"),
		MinAttendance: optInt(args, "minAttendance"),
		MaxAttendance: optInt(args, "maxAttendance"),
	}
}
