package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

var (
	_ repository.EmployeeRepository        = (*EmployeeRepo)(nil)
	_ repository.JobTitleRepository        = (*JobTitleRepo)(nil)
	_ repository.SalaryParameterRepository = (*SalaryParameterRepo)(nil)
)

// EmployeeRepo adaptador PostgreSQL de empleados.
type EmployeeRepo struct{ q Querier }

// NewEmployeeRepository construye el adaptador.
func NewEmployeeRepository(q Querier) *EmployeeRepo { return &EmployeeRepo{q: q} }

func (r *EmployeeRepo) Create(ctx context.Context, e *entity.Employee) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO employees (full_name, job_title_id, phone, address) VALUES ($1, $2, $3, $4) RETURNING id`,
		e.FullName, e.JobTitleID, e.Phone, e.Address).Scan(&e.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert employee: %w", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	var e entity.Employee
	err := r.q.QueryRow(ctx,
		`SELECT id, full_name, job_title_id, phone, address FROM employees WHERE id = $1`, id).
		Scan(&e.ID, &e.FullName, &e.JobTitleID, &e.Phone, &e.Address)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

func (r *EmployeeRepo) List(ctx context.Context, filter repository.EmployeeFilter) ([]*entity.Employee, error) {
	var (
		conds []string
		args  []any
	)
	if s := strings.TrimSpace(filter.Search); s != "" {
		args = append(args, likePattern(s))
		conds = append(conds, fmt.Sprintf("full_name ILIKE $%d", len(args)))
	}
	if filter.JobTitleID != nil {
		args = append(args, *filter.JobTitleID)
		conds = append(conds, fmt.Sprintf("job_title_id = $%d", len(args)))
	}
	query := `SELECT id, full_name, job_title_id, phone, address FROM employees`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	var list []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.JobTitleID, &e.Phone, &e.Address); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *EmployeeRepo) Update(ctx context.Context, e *entity.Employee) error {
	err := execUpdate(ctx, r.q,
		`UPDATE employees SET full_name = $2, job_title_id = $3, phone = $4, address = $5 WHERE id = $1`,
		e.ID, e.FullName, e.JobTitleID, e.Phone, e.Address)
	if err != nil && isForeignKeyViolation(err) {
		return fmt.Errorf("update employee: %w", domain.ErrInvalidInput)
	}
	return err
}

func (r *EmployeeRepo) CountInvoices(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices WHERE employee_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count employee invoices: %w", err)
	}
	return n, nil
}

func (r *EmployeeRepo) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM employees WHERE id = $1`, id, func() error {
		return &domain.ReferentialIntegrityError{Entity: "employee", ID: id, Dependency: "invoices"}
	})
}

// JobTitleRepo adaptador PostgreSQL de cargos.
type JobTitleRepo struct{ q Querier }

// NewJobTitleRepository construye el adaptador.
func NewJobTitleRepository(q Querier) *JobTitleRepo { return &JobTitleRepo{q: q} }

const jobTitleColumns = `id, name, allowance, salary_coefficient, note`

func (r *JobTitleRepo) Create(ctx context.Context, jt *entity.JobTitle) error {
	err := r.q.QueryRow(ctx,
		`INSERT INTO job_titles (name, allowance, salary_coefficient, note) VALUES ($1, $2, $3, $4) RETURNING id`,
		jt.Name, jt.Allowance, jt.SalaryCoefficient, jt.Note).Scan(&jt.ID)
	if err != nil {
		return fmt.Errorf("insert job title: %w", err)
	}
	return nil
}

func (r *JobTitleRepo) GetByID(ctx context.Context, id int64) (*entity.JobTitle, error) {
	var jt entity.JobTitle
	err := r.q.QueryRow(ctx, `SELECT `+jobTitleColumns+` FROM job_titles WHERE id = $1`, id).
		Scan(&jt.ID, &jt.Name, &jt.Allowance, &jt.SalaryCoefficient, &jt.Note)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get job title: %w", err)
	}
	return &jt, nil
}

func (r *JobTitleRepo) List(ctx context.Context) ([]*entity.JobTitle, error) {
	rows, err := r.q.Query(ctx, `SELECT `+jobTitleColumns+` FROM job_titles ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list job titles: %w", err)
	}
	defer rows.Close()
	var list []*entity.JobTitle
	for rows.Next() {
		var jt entity.JobTitle
		if err := rows.Scan(&jt.ID, &jt.Name, &jt.Allowance, &jt.SalaryCoefficient, &jt.Note); err != nil {
			return nil, fmt.Errorf("scan job title: %w", err)
		}
		list = append(list, &jt)
	}
	return list, rows.Err()
}

func (r *JobTitleRepo) Update(ctx context.Context, jt *entity.JobTitle) error {
	return execUpdate(ctx, r.q,
		`UPDATE job_titles SET name = $2, allowance = $3, salary_coefficient = $4, note = $5 WHERE id = $1`,
		jt.ID, jt.Name, jt.Allowance, jt.SalaryCoefficient, jt.Note)
}

func (r *JobTitleRepo) CountEmployees(ctx context.Context, id int64) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE job_title_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count job title employees: %w", err)
	}
	return n, nil
}

func (r *JobTitleRepo) Delete(ctx context.Context, id int64) error {
	return execDelete(ctx, r.q, `DELETE FROM job_titles WHERE id = $1`, id, func() error {
		return &domain.ReferentialIntegrityError{Entity: "job_title", ID: id, Dependency: "employees"}
	})
}

// SalaryParameterRepo adaptador PostgreSQL de parámetros de nómina.
type SalaryParameterRepo struct{ q Querier }

// NewSalaryParameterRepository construye el adaptador.
func NewSalaryParameterRepository(q Querier) *SalaryParameterRepo { return &SalaryParameterRepo{q: q} }

const salaryParamColumns = `id, name, numeric_value, text_value, effective_date, note`

func (r *SalaryParameterRepo) Create(ctx context.Context, p *entity.SalaryParameter) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO salary_parameters (name, numeric_value, text_value, effective_date, note)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.Name, p.NumericValue, p.TextValue, p.EffectiveDate, p.Note).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("insert salary parameter: %w", err)
	}
	return nil
}

func (r *SalaryParameterRepo) List(ctx context.Context) ([]*entity.SalaryParameter, error) {
	rows, err := r.q.Query(ctx, `SELECT `+salaryParamColumns+` FROM salary_parameters ORDER BY name, effective_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("list salary parameters: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalaryParameter
	for rows.Next() {
		p, err := scanSalaryParam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan salary parameter: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *SalaryParameterRepo) GetCurrent(ctx context.Context, name string, at time.Time) (*entity.SalaryParameter, error) {
	p, err := scanSalaryParam(r.q.QueryRow(ctx, `
		SELECT `+salaryParamColumns+` FROM salary_parameters
		WHERE name = $1 AND effective_date <= $2
		ORDER BY effective_date DESC, id DESC
		LIMIT 1`, name, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get current salary parameter: %w", err)
	}
	return p, nil
}

func scanSalaryParam(row pgx.Row) (*entity.SalaryParameter, error) {
	var p entity.SalaryParameter
	if err := row.Scan(&p.ID, &p.Name, &p.NumericValue, &p.TextValue, &p.EffectiveDate, &p.Note); err != nil {
		return nil, err
	}
	return &p, nil
}
