package repository

import (
	"context"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
)

// EmployeeFilter criterios de listado de empleados.
type EmployeeFilter struct {
	Search     string
	JobTitleID *int64
}

// EmployeeRepository define el puerto de persistencia para Employee.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]*entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	CountInvoices(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// JobTitleRepository define el puerto de persistencia para JobTitle.
type JobTitleRepository interface {
	Create(ctx context.Context, jobTitle *entity.JobTitle) error
	GetByID(ctx context.Context, id int64) (*entity.JobTitle, error)
	List(ctx context.Context) ([]*entity.JobTitle, error)
	Update(ctx context.Context, jobTitle *entity.JobTitle) error
	CountEmployees(ctx context.Context, id int64) (int, error)
	Delete(ctx context.Context, id int64) error
}

// SalaryParameterRepository define el puerto de persistencia para SalaryParameter.
type SalaryParameterRepository interface {
	Create(ctx context.Context, param *entity.SalaryParameter) error
	List(ctx context.Context) ([]*entity.SalaryParameter, error)
	// GetCurrent devuelve el parámetro con la fecha de vigencia más reciente <= at, o nil.
	GetCurrent(ctx context.Context, name string, at time.Time) (*entity.SalaryParameter, error)
}
