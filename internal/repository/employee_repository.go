package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffhub/internal/model"
)

// EmployeeFilter is a typed filter descriptor for employee listings. Every
// field is optional; a nil field leaves that constraint open. Range bounds
// are inclusive and applied independently.
type EmployeeFilter struct {
	Search        *string
	Department    *string
	Class         *string
	MinAge        *int
	MaxAge        *int
	MinAttendance *int
	MaxAttendance *int
}

// ListOptions describes one page of an employee listing. SortColumn must be a
// column name already validated against the sortable set; it is interpolated
// into the ORDER BY clause.
type ListOptions struct {
	Filter     EmployeeFilter
	SortColumn string
	Desc       bool
	Offset     int
	Limit      int
}

// EmployeeRepository defines employee persistence operations.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	Update(ctx context.Context, employee *model.Employee) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
	FindByEmailExcluding(ctx context.Context, email string, id uuid.UUID) (*model.Employee, error)
	List(ctx context.Context, opts ListOptions) ([]model.Employee, int64, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	AverageAttendance(ctx context.Context) (float64, error)
	CountDistinctDepartments(ctx context.Context) (int64, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository builds a GORM-backed repository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) Update(ctx context.Context, employee *model.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete removes an employee and reports whether a record matched.
func (r *employeeRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Employee{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// FindByEmailExcluding finds an employee with the given email whose id
// differs from id. Used for email-conflict checks on updates.
func (r *employeeRepository) FindByEmailExcluding(ctx context.Context, email string, id uuid.UUID) (*model.Employee, error) {
	var employee model.Employee
	if err := r.db.WithContext(ctx).Where("email = ? AND id <> ?", email, id).First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// List returns one page of employees matching opts plus the total count of
// matches ignoring pagination.
func (r *employeeRepository) List(ctx context.Context, opts ListOptions) ([]model.Employee, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Scopes(filterScope(opts.Filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := opts.SortColumn
	if opts.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	var employees []model.Employee
	if err := r.db.WithContext(ctx).
		Scopes(filterScope(opts.Filter)).
		Order(order).
		Offset(opts.Offset).
		Limit(opts.Limit).
		Find(&employees).Error; err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// filterScope translates an EmployeeFilter into WHERE clauses. The free-text
// search covers the same fields the record is indexed on: name, email,
// department, position, class.
func filterScope(f EmployeeFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if f.Search != nil && *f.Search != "" {
			like := "%" + strings.ToLower(*f.Search) + "%"
			tx = tx.Where(
				"(LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(department) LIKE ? OR LOWER(position) LIKE ? OR LOWER(class) LIKE ?)",
				like, like, like, like, like,
			)
		}
		if f.Department != nil && *f.Department != "" {
			tx = tx.Where("department = ?", *f.Department)
		}
		if f.Class != nil && *f.Class != "" {
			tx = tx.Where("class = ?", *f.Class)
		}
		if f.MinAge != nil {
			tx = tx.Where("age >= ?", *f.MinAge)
		}
		if f.MaxAge != nil {
			tx = tx.Where("age <= ?", *f.MaxAge)
		}
		if f.MinAttendance != nil {
			tx = tx.Where("attendance >= ?", *f.MinAttendance)
		}
		if f.MaxAttendance != nil {
			tx = tx.Where("attendance <= ?", *f.MaxAttendance)
		}
		return tx
	}
}

func (r *employeeRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Count(&n).Error
	return n, err
}

func (r *employeeRepository) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("created_at >= ?", since).
		Count(&n).Error
	return n, err
}

// AverageAttendance returns the mean attendance across all employees, or 0
// when the table is empty.
func (r *employeeRepository) AverageAttendance(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Select("COALESCE(AVG(attendance), 0)").
		Scan(&avg).Error
	return avg, err
}

// CountDistinctDepartments counts distinct non-empty department values.
func (r *employeeRepository) CountDistinctDepartments(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("department IS NOT NULL AND department <> ''").
		Distinct("department").
		Count(&n).Error
	return n, err
}
