package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// EmployeeRepository implementación en memoria de repository.EmployeeRepository.
type EmployeeRepository struct{ run runFunc }

// NewEmployeeRepository crea el repositorio sobre el almacén.
func NewEmployeeRepository(s *Store) *EmployeeRepository { return &EmployeeRepository{run: s.run} }

var _ repository.EmployeeRepository = (*EmployeeRepository)(nil)

func (r *EmployeeRepository) Create(ctx context.Context, e *entity.Employee) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.jobTitles[e.JobTitleID]; !ok {
			return domain.ErrInvalidInput
		}
		e.ID = d.next("employees")
		d.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	var out *entity.Employee
	err := r.run(func(d *dataset) error {
		if e, ok := d.employees[id]; ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *EmployeeRepository) List(ctx context.Context, filter repository.EmployeeFilter) ([]*entity.Employee, error) {
	var out []*entity.Employee
	err := r.run(func(d *dataset) error {
		for _, e := range d.employees {
			if !matches(e.FullName, filter.Search) {
				continue
			}
			if filter.JobTitleID != nil && e.JobTitleID != *filter.JobTitleID {
				continue
			}
			e := e
			out = append(out, &e)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *EmployeeRepository) Update(ctx context.Context, e *entity.Employee) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.employees[e.ID]; !ok {
			return domain.ErrNotFound
		}
		if _, ok := d.jobTitles[e.JobTitleID]; !ok {
			return domain.ErrInvalidInput
		}
		d.employees[e.ID] = *e
		return nil
	})
}

func (r *EmployeeRepository) CountInvoices(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.run(func(d *dataset) error {
		n = employeeInvoices(d, id)
		return nil
	})
	return n, err
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.employees[id]; !ok {
			return domain.ErrNotFound
		}
		if employeeInvoices(d, id) > 0 {
			return &domain.ReferentialIntegrityError{Entity: "employee", ID: id, Dependency: "invoices"}
		}
		delete(d.employees, id)
		return nil
	})
}

func employeeInvoices(d *dataset, id int64) int {
	n := 0
	for _, inv := range d.invoices {
		if inv.EmployeeID == id {
			n++
		}
	}
	return n
}

// JobTitleRepository implementación en memoria de repository.JobTitleRepository.
type JobTitleRepository struct{ run runFunc }

// NewJobTitleRepository crea el repositorio sobre el almacén.
func NewJobTitleRepository(s *Store) *JobTitleRepository { return &JobTitleRepository{run: s.run} }

var _ repository.JobTitleRepository = (*JobTitleRepository)(nil)

func (r *JobTitleRepository) Create(ctx context.Context, jt *entity.JobTitle) error {
	return r.run(func(d *dataset) error {
		jt.ID = d.next("job_titles")
		d.jobTitles[jt.ID] = *jt
		return nil
	})
}

func (r *JobTitleRepository) GetByID(ctx context.Context, id int64) (*entity.JobTitle, error) {
	var out *entity.JobTitle
	err := r.run(func(d *dataset) error {
		if jt, ok := d.jobTitles[id]; ok {
			out = &jt
		}
		return nil
	})
	return out, err
}

func (r *JobTitleRepository) List(ctx context.Context) ([]*entity.JobTitle, error) {
	var out []*entity.JobTitle
	err := r.run(func(d *dataset) error {
		for _, jt := range d.jobTitles {
			jt := jt
			out = append(out, &jt)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

func (r *JobTitleRepository) Update(ctx context.Context, jt *entity.JobTitle) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.jobTitles[jt.ID]; !ok {
			return domain.ErrNotFound
		}
		d.jobTitles[jt.ID] = *jt
		return nil
	})
}

func (r *JobTitleRepository) CountEmployees(ctx context.Context, id int64) (int, error) {
	var n int
	err := r.run(func(d *dataset) error {
		for _, e := range d.employees {
			if e.JobTitleID == id {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r *JobTitleRepository) Delete(ctx context.Context, id int64) error {
	return r.run(func(d *dataset) error {
		if _, ok := d.jobTitles[id]; !ok {
			return domain.ErrNotFound
		}
		for _, e := range d.employees {
			if e.JobTitleID == id {
				return &domain.ReferentialIntegrityError{Entity: "job_title", ID: id, Dependency: "employees"}
			}
		}
		delete(d.jobTitles, id)
		return nil
	})
}

// SalaryParameterRepository implementación en memoria de repository.SalaryParameterRepository.
type SalaryParameterRepository struct{ run runFunc }

// NewSalaryParameterRepository crea el repositorio sobre el almacén.
func NewSalaryParameterRepository(s *Store) *SalaryParameterRepository {
	return &SalaryParameterRepository{run: s.run}
}

var _ repository.SalaryParameterRepository = (*SalaryParameterRepository)(nil)

func (r *SalaryParameterRepository) Create(ctx context.Context, p *entity.SalaryParameter) error {
	return r.run(func(d *dataset) error {
		p.ID = d.next("salary_parameters")
		d.params[p.ID] = copyParam(*p)
		return nil
	})
}

func (r *SalaryParameterRepository) List(ctx context.Context) ([]*entity.SalaryParameter, error) {
	var out []*entity.SalaryParameter
	err := r.run(func(d *dataset) error {
		for _, p := range d.params {
			c := copyParam(p)
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].EffectiveDate.After(out[j].EffectiveDate)
	})
	return out, err
}

func (r *SalaryParameterRepository) GetCurrent(ctx context.Context, name string, at time.Time) (*entity.SalaryParameter, error) {
	var out *entity.SalaryParameter
	err := r.run(func(d *dataset) error {
		for _, p := range d.params {
			if p.Name != name || p.EffectiveDate.After(at) {
				continue
			}
			if out == nil || p.EffectiveDate.After(out.EffectiveDate) ||
				(p.EffectiveDate.Equal(out.EffectiveDate) && p.ID > out.ID) {
				c := copyParam(p)
				out = &c
			}
		}
		return nil
	})
	return out, err
}
