package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "staffhub/internal/errors"
	"staffhub/internal/model"
	"staffhub/internal/repository"
)

// MockEmployeeRepository is a mock implementation of
// repository.EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindByEmailExcluding(ctx context.Context, email string, id uuid.UUID) (*model.Employee, error) {
	args := m.Called(ctx, email, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.Employee, int64, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Employee), args.Get(1).(int64), args.Error(2)
}

func (m *MockEmployeeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEmployeeRepository) AverageAttendance(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEmployeeRepository) CountDistinctDepartments(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func validInput() EmployeeInput {
	return EmployeeInput{Name: "New Hire", Email: "hire@example.com"}
}

func TestEmployeeService_Create(t *testing.T) {
	t.Run("applies domain defaults", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("FindByEmail", mock.Anything, "hire@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Employee) bool {
			return e.Attendance == 100 && e.Performance == 7 && !e.JoinDate.IsZero()
		})).Return(nil)
		svc := NewEmployeeService(repo, nil)

		employee, err := svc.Create(context.Background(), validInput())
		require.NoError(t, err)
		assert.Equal(t, 100, employee.Attendance)
		assert.Equal(t, 7, employee.Performance)
		assert.WithinDuration(t, time.Now(), employee.JoinDate, time.Minute)
		repo.AssertExpectations(t)
	})

	t.Run("email already in use", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("FindByEmail", mock.Anything, "hire@example.com").
			Return(&model.Employee{Email: "hire@example.com"}, nil)
		svc := NewEmployeeService(repo, nil)

		_, err := svc.Create(context.Background(), validInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsUserInput(err))
		assert.Equal(t, "Email is already in use", err.Error())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unique index wins the race", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("FindByEmail", mock.Anything, "hire@example.com").Return(nil, gorm.ErrRecordNotFound)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Employee")).Return(gorm.ErrDuplicatedKey)
		svc := NewEmployeeService(repo, nil)

		_, err := svc.Create(context.Background(), validInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsUserInput(err))
		assert.Equal(t, "Email is already in use", err.Error())
	})

	t.Run("validation failures", func(t *testing.T) {
		svc := NewEmployeeService(new(MockEmployeeRepository), nil)

		age := 17
		attendance := 150
		class := "Principal"
		for name, input := range map[string]EmployeeInput{
			"missing name":       {Email: "x@example.com"},
			"bad email":          {Name: "X", Email: "not-an-email"},
			"age below minimum":  {Name: "X", Email: "x@example.com", Age: &age},
			"attendance too big": {Name: "X", Email: "x@example.com", Attendance: &attendance},
			"unknown class":      {Name: "X", Email: "x@example.com", Class: &class},
		} {
			_, err := svc.Create(context.Background(), input)
			require.Error(t, err, name)
			assert.True(t, apperrors.IsUserInput(err), name)
		}
	})
}

func TestEmployeeService_Update(t *testing.T) {
	id := uuid.New()

	t.Run("email belongs to a different employee", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("FindByEmailExcluding", mock.Anything, "hire@example.com", id).
			Return(&model.Employee{Email: "hire@example.com"}, nil)
		svc := NewEmployeeService(repo, nil)

		_, err := svc.Update(context.Background(), id, validInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsUserInput(err))
		assert.Equal(t, "Email is already in use", err.Error())
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("target missing", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("FindByEmailExcluding", mock.Anything, "hire@example.com", id).Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByID", mock.Anything, id).Return(nil, gorm.ErrRecordNotFound)
		svc := NewEmployeeService(repo, nil)

		_, err := svc.Update(context.Background(), id, validInput())
		require.Error(t, err)
		assert.True(t, apperrors.IsUserInput(err))
		assert.Equal(t, "Employee not found", err.Error())
	})

	t.Run("partial update leaves omitted fields alone", func(t *testing.T) {
		joined := time.Date(2020, 5, 4, 0, 0, 0, 0, time.UTC)
		age := 30
		existing := &model.Employee{
			ID:          id,
			Name:        "Old Name",
			Email:       "old@example.com",
			Age:         &age,
			Class:       model.ClassSenior,
			Attendance:  95,
			Department:  "Engineering",
			JoinDate:    joined,
			Performance: 8,
		}

		repo := new(MockEmployeeRepository)
		repo.On("FindByEmailExcluding", mock.Anything, "hire@example.com", id).Return(nil, gorm.ErrRecordNotFound)
		repo.On("FindByID", mock.Anything, id).Return(existing, nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*model.Employee")).Return(nil)
		svc := NewEmployeeService(repo, nil)

		updated, err := svc.Update(context.Background(), id, validInput())
		require.NoError(t, err)
		assert.Equal(t, "New Hire", updated.Name)
		assert.Equal(t, "hire@example.com", updated.Email)
		// Untouched optionals keep their stored values.
		assert.Equal(t, model.ClassSenior, updated.Class)
		assert.Equal(t, 95, updated.Attendance)
		assert.Equal(t, "Engineering", updated.Department)
		assert.Equal(t, joined, updated.JoinDate)
		assert.Equal(t, 8, updated.Performance)
		require.NotNil(t, updated.Age)
		assert.Equal(t, 30, *updated.Age)
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	id := uuid.New()

	t.Run("deleted", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("Delete", mock.Anything, id).Return(true, nil)
		svc := NewEmployeeService(repo, nil)

		deleted, err := svc.Delete(context.Background(), id)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("missing id reports false, not an error", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("Delete", mock.Anything, id).Return(false, nil)
		svc := NewEmployeeService(repo, nil)

		deleted, err := svc.Delete(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func TestEmployeeService_List(t *testing.T) {
	t.Run("total pages from total count", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(opts repository.ListOptions) bool {
			return opts.Limit == 10 && opts.Offset == 10 && opts.SortColumn == "name" && !opts.Desc
		})).Return(make([]model.Employee, 10), int64(25), nil)
		svc := NewEmployeeService(repo, nil)

		page, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 10, SortBy: "name", SortOrder: "ASC"})
		require.NoError(t, err)
		assert.Equal(t, int64(25), page.TotalCount)
		assert.Equal(t, 3, page.TotalPages)
		repo.AssertExpectations(t)
	})

	t.Run("zero limit clamps instead of dividing by zero", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(opts repository.ListOptions) bool {
			return opts.Limit == 10 && opts.Offset == 0
		})).Return([]model.Employee{}, int64(0), nil)
		svc := NewEmployeeService(repo, nil)

		page, err := svc.List(context.Background(), ListParams{Page: 0, Limit: 0})
		require.NoError(t, err)
		assert.Equal(t, 0, page.TotalPages)
		repo.AssertExpectations(t)
	})

	t.Run("sort field mapped to column", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		repo.On("List", mock.Anything, mock.MatchedBy(func(opts repository.ListOptions) bool {
			return opts.SortColumn == "join_date" && opts.Desc
		})).Return([]model.Employee{}, int64(0), nil)
		svc := NewEmployeeService(repo, nil)

		_, err := svc.List(context.Background(), ListParams{SortBy: "joinDate", SortOrder: "DESC"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("unknown sort field rejected before the data layer", func(t *testing.T) {
		repo := new(MockEmployeeRepository)
		svc := NewEmployeeService(repo, nil)

		_, err := svc.List(context.Background(), ListParams{SortBy: "password; DROP TABLE employees"})
		require.Error(t, err)
		assert.True(t, apperrors.IsUserInput(err))
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
