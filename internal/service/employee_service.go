package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffhub/internal/cache"
	apperrors "staffhub/internal/errors"
	"staffhub/internal/model"
	"staffhub/internal/repository"
)

const (
	defaultPageLimit   = 10
	defaultAttendance  = 100
	defaultPerformance = 7
)

// sortColumns is the closed set of sortable fields, mapped to their column
// names. Anything outside it is rejected before reaching the data layer.
var sortColumns = map[string]string{
	"name":        "name",
	"email":       "email",
	"age":         "age",
	"class":       "class",
	"attendance":  "attendance",
	"department":  "department",
	"position":    "position",
	"joinDate":    "join_date",
	"performance": "performance",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

// EmployeeInput carries a create or update payload. Name and email are
// required; everything else is optional, with nil meaning "not provided".
type EmployeeInput struct {
	Name         string  `validate:"required"`
	Email        string  `validate:"required,email"`
	Phone        *string
	Age          *int    `validate:"omitempty,gte=18,lte=100"`
	Class        *string `validate:"omitempty,oneof=Senior Mid-level Junior Intern"`
	Attendance   *int    `validate:"omitempty,gte=0,lte=100"`
	Subjects     []string
	Department   *string
	Position     *string
	JoinDate     *time.Time
	Address      *string
	Bio          *string
	Education    []string
	Skills       []string
	Performance  *int `validate:"omitempty,gte=0,lte=10"`
	Notes        *string
	ProfileImage *string
}

// ListParams describes a getEmployees request before validation.
type ListParams struct {
	Page      int
	Limit     int
	Filter    repository.EmployeeFilter
	SortBy    string
	SortOrder string
}

// EmployeePage is one page of a listing plus pagination totals.
type EmployeePage struct {
	Employees  []model.Employee `json:"employees"`
	TotalCount int64            `json:"totalCount"`
	TotalPages int              `json:"totalPages"`
}

// EmployeeService handles employee record operations. Authorization is
// checked by the resolver layer before any call lands here.
type EmployeeService interface {
	List(ctx context.Context, params ListParams) (*EmployeePage, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	Create(ctx context.Context, input EmployeeInput) (*model.Employee, error)
	Update(ctx context.Context, id uuid.UUID, input EmployeeInput) (*model.Employee, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type employeeService struct {
	employees repository.EmployeeRepository
	cache     *cache.Client
	validate  *validator.Validate
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employees repository.EmployeeRepository, cache *cache.Client) EmployeeService {
	return &employeeService{
		employees: employees,
		cache:     cache,
		validate:  validator.New(),
	}
}

// List returns a filtered, sorted, paginated employee page. Page and limit
// are clamped so a zero limit can never divide totalPages by zero.
func (s *employeeService) List(ctx context.Context, params ListParams) (*EmployeePage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	limit := params.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}

	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = "name"
	}
	column, ok := sortColumns[sortBy]
	if !ok {
		return nil, apperrors.NewUserInput(fmt.Sprintf("Invalid sort field: %s", sortBy))
	}

	employees, total, err := s.employees.List(ctx, repository.ListOptions{
		Filter:     params.Filter,
		SortColumn: column,
		Desc:       params.SortOrder == "DESC",
		Offset:     (page - 1) * limit,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	return &EmployeePage{
		Employees:  employees,
		TotalCount: total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *employeeService) Get(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewUserInput("Employee not found")
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return employee, nil
}

// Create inserts a new employee record, applying the domain defaults for
// fields the caller omitted.
func (s *employeeService) Create(ctx context.Context, input EmployeeInput) (*model.Employee, error) {
	input.Email = normalizeEmail(input.Email)
	if err := s.validate.Struct(&input); err != nil {
		return nil, apperrors.NewUserInput(err.Error())
	}

	existing, err := s.employees.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.NewUserInput("Email is already in use")
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check employee existence: %w", err)
	}

	employee := &model.Employee{
		Name:        input.Name,
		Email:       input.Email,
		Age:         input.Age,
		Attendance:  defaultAttendance,
		Subjects:    []string{},
		JoinDate:    time.Now(),
		Education:   []string{},
		Skills:      []string{},
		Performance: defaultPerformance,
	}
	applyOptional(employee, input)

	if err := s.employees.Create(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewUserInput("Email is already in use")
		}
		return nil, fmt.Errorf("create employee: %w", err)
	}

	s.invalidateStats(ctx)
	return employee, nil
}

// Update partially updates an employee: only provided fields change.
func (s *employeeService) Update(ctx context.Context, id uuid.UUID, input EmployeeInput) (*model.Employee, error) {
	input.Email = normalizeEmail(input.Email)
	if err := s.validate.Struct(&input); err != nil {
		return nil, apperrors.NewUserInput(err.Error())
	}

	_, err := s.employees.FindByEmailExcluding(ctx, input.Email, id)
	if err == nil {
		return nil, apperrors.NewUserInput("Email is already in use")
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email conflict: %w", err)
	}

	employee, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewUserInput("Employee not found")
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}

	employee.Name = input.Name
	employee.Email = input.Email
	if input.Age != nil {
		employee.Age = input.Age
	}
	applyOptional(employee, input)

	if err := s.employees.Update(ctx, employee); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.NewUserInput("Email is already in use")
		}
		return nil, fmt.Errorf("update employee: %w", err)
	}

	s.invalidateStats(ctx)
	return employee, nil
}

// Delete removes an employee and reports whether a record matched. Deleting
// a missing id is not an error.
func (s *employeeService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	deleted, err := s.employees.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete employee: %w", err)
	}
	if deleted {
		s.invalidateStats(ctx)
	}
	return deleted, nil
}

func (s *employeeService) invalidateStats(ctx context.Context) {
	_ = s.cache.Delete(ctx, dashboardStatsCacheKey)
}

// applyOptional copies the provided optional fields onto the record.
func applyOptional(employee *model.Employee, input EmployeeInput) {
	if input.Phone != nil {
		employee.Phone = *input.Phone
	}
	if input.Class != nil {
		employee.Class = *input.Class
	}
	if input.Attendance != nil {
		employee.Attendance = *input.Attendance
	}
	if input.Subjects != nil {
		employee.Subjects = input.Subjects
	}
	if input.Department != nil {
		employee.Department = *input.Department
	}
	if input.Position != nil {
		employee.Position = *input.Position
	}
	if input.JoinDate != nil {
		employee.JoinDate = *input.JoinDate
	}
	if input.Address != nil {
		employee.Address = *input.Address
	}
	if input.Bio != nil {
		employee.Bio = *input.Bio
	}
	if input.Education != nil {
		employee.Education = input.Education
	}
	if input.Skills != nil {
		employee.Skills = input.Skills
	}
	if input.Performance != nil {
		employee.Performance = *input.Performance
	}
	if input.Notes != nil {
		employee.Notes = *input.Notes
	}
	if input.ProfileImage != nil {
		employee.ProfileImage = *input.ProfileImage
	}
}
