package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/domain"
	"github.com/jhoicas/retail-backoffice/internal/domain/entity"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// EmployeeUseCase aplica reglas de negocio para empleados, cargos y parámetros de nómina.
type EmployeeUseCase struct {
	employeeRepo repository.EmployeeRepository
	jobTitleRepo repository.JobTitleRepository
	paramRepo    repository.SalaryParameterRepository
	now          func() time.Time
}

// NewEmployeeUseCase construye el caso de uso con los puertos de persistencia.
func NewEmployeeUseCase(
	employeeRepo repository.EmployeeRepository,
	jobTitleRepo repository.JobTitleRepository,
	paramRepo repository.SalaryParameterRepository,
) *EmployeeUseCase {
	return &EmployeeUseCase{
		employeeRepo: employeeRepo,
		jobTitleRepo: jobTitleRepo,
		paramRepo:    paramRepo,
		now:          time.Now,
	}
}

// ── Cargos ────────────────────────────────────────────────────────────────────

// CreateJobTitle crea un cargo. Sin coeficiente se asume 1.
func (uc *EmployeeUseCase) CreateJobTitle(ctx context.Context, in dto.JobTitleRequest) (*dto.JobTitleResponse, error) {
	jt := &entity.JobTitle{}
	if err := applyJobTitle(jt, in); err != nil {
		return nil, err
	}
	if err := uc.jobTitleRepo.Create(ctx, jt); err != nil {
		return nil, err
	}
	return toJobTitleResponse(jt), nil
}

// GetJobTitle obtiene un cargo por ID.
func (uc *EmployeeUseCase) GetJobTitle(ctx context.Context, id int64) (*dto.JobTitleResponse, error) {
	jt, err := uc.jobTitleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if jt == nil {
		return nil, domain.ErrNotFound
	}
	return toJobTitleResponse(jt), nil
}

// ListJobTitles lista todos los cargos.
func (uc *EmployeeUseCase) ListJobTitles(ctx context.Context) ([]dto.JobTitleResponse, error) {
	list, err := uc.jobTitleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.JobTitleResponse, 0, len(list))
	for _, jt := range list {
		out = append(out, *toJobTitleResponse(jt))
	}
	return out, nil
}

// UpdateJobTitle reemplaza los datos del cargo.
func (uc *EmployeeUseCase) UpdateJobTitle(ctx context.Context, id int64, in dto.JobTitleRequest) (*dto.JobTitleResponse, error) {
	jt, err := uc.jobTitleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if jt == nil {
		return nil, domain.ErrNotFound
	}
	if err := applyJobTitle(jt, in); err != nil {
		return nil, err
	}
	if err := uc.jobTitleRepo.Update(ctx, jt); err != nil {
		return nil, err
	}
	return toJobTitleResponse(jt), nil
}

// DeleteJobTitle elimina un cargo que no tenga empleados.
func (uc *EmployeeUseCase) DeleteJobTitle(ctx context.Context, id int64) error {
	jt, err := uc.jobTitleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if jt == nil {
		return domain.ErrNotFound
	}
	n, err := uc.jobTitleRepo.CountEmployees(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ReferentialIntegrityError{Entity: "job_title", ID: id, Dependency: "employees"}
	}
	return uc.jobTitleRepo.Delete(ctx, id)
}

// ── Empleados ─────────────────────────────────────────────────────────────────

// CreateEmployee crea un empleado asociado a un cargo existente.
func (uc *EmployeeUseCase) CreateEmployee(ctx context.Context, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := strings.TrimSpace(in.FullName)
	if name == "" || in.JobTitleID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkJobTitle(ctx, in.JobTitleID); err != nil {
		return nil, err
	}
	e := &entity.Employee{FullName: name, JobTitleID: in.JobTitleID, Phone: in.Phone, Address: in.Address}
	if err := uc.employeeRepo.Create(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// GetEmployee obtiene un empleado por ID.
func (uc *EmployeeUseCase) GetEmployee(ctx context.Context, id int64) (*dto.EmployeeResponse, error) {
	e, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEmployeeResponse(e), nil
}

// ListEmployees lista empleados filtrando por nombre y/o cargo.
func (uc *EmployeeUseCase) ListEmployees(ctx context.Context, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	list, err := uc.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// UpdateEmployee aplica una actualización parcial.
func (uc *EmployeeUseCase) UpdateEmployee(ctx context.Context, id int64, in dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	e, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		e.FullName = name
	}
	if in.JobTitleID != nil {
		if err := uc.checkJobTitle(ctx, *in.JobTitleID); err != nil {
			return nil, err
		}
		e.JobTitleID = *in.JobTitleID
	}
	if in.Phone != nil {
		e.Phone = *in.Phone
	}
	if in.Address != nil {
		e.Address = *in.Address
	}
	if err := uc.employeeRepo.Update(ctx, e); err != nil {
		return nil, err
	}
	return toEmployeeResponse(e), nil
}

// DeleteEmployee elimina un empleado sin facturas emitidas.
func (uc *EmployeeUseCase) DeleteEmployee(ctx context.Context, id int64) error {
	e, err := uc.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	n, err := uc.employeeRepo.CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ReferentialIntegrityError{Entity: "employee", ID: id, Dependency: "invoices"}
	}
	return uc.employeeRepo.Delete(ctx, id)
}

// Salary calcula salario = salario base vigente × coeficiente del cargo + subsidio.
func (uc *EmployeeUseCase) Salary(ctx context.Context, employeeID int64) (*dto.SalaryResponse, error) {
	e, err := uc.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	jt, err := uc.jobTitleRepo.GetByID(ctx, e.JobTitleID)
	if err != nil {
		return nil, err
	}
	if jt == nil {
		return nil, fmt.Errorf("cargo %d del empleado %d: %w", e.JobTitleID, e.ID, domain.ErrNotFound)
	}
	param, err := uc.paramRepo.GetCurrent(ctx, entity.BaseSalaryParameter, uc.now())
	if err != nil {
		return nil, err
	}
	if param == nil || param.NumericValue == nil {
		return nil, fmt.Errorf("parámetro %s vigente: %w", entity.BaseSalaryParameter, domain.ErrNotFound)
	}
	base := *param.NumericValue
	return &dto.SalaryResponse{
		EmployeeID:  e.ID,
		JobTitle:    jt.Name,
		BaseSalary:  base,
		Coefficient: jt.SalaryCoefficient,
		Allowance:   jt.Allowance,
		Salary:      base.Mul(jt.SalaryCoefficient).Add(jt.Allowance).Round(2),
	}, nil
}

// ── Parámetros de nómina ──────────────────────────────────────────────────────

// CreateSalaryParameter registra un parámetro con su fecha de vigencia (YYYY-MM-DD).
func (uc *EmployeeUseCase) CreateSalaryParameter(ctx context.Context, in dto.SalaryParameterRequest) (*dto.SalaryParameterResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	effective, err := time.Parse(dateLayout, strings.TrimSpace(in.EffectiveDate))
	if err != nil {
		return nil, fmt.Errorf("fecha de vigencia %q: %w", in.EffectiveDate, domain.ErrInvalidInput)
	}
	if in.NumericValue != nil && in.NumericValue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.SalaryParameter{
		Name:          name,
		NumericValue:  in.NumericValue,
		TextValue:     in.TextValue,
		EffectiveDate: effective,
		Note:          in.Note,
	}
	if err := uc.paramRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return toSalaryParameterResponse(p), nil
}

// ListSalaryParameters lista los parámetros registrados.
func (uc *EmployeeUseCase) ListSalaryParameters(ctx context.Context) ([]dto.SalaryParameterResponse, error) {
	list, err := uc.paramRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalaryParameterResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toSalaryParameterResponse(p))
	}
	return out, nil
}

func (uc *EmployeeUseCase) checkJobTitle(ctx context.Context, id int64) error {
	jt, err := uc.jobTitleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if jt == nil {
		return fmt.Errorf("cargo %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func applyJobTitle(jt *entity.JobTitle, in dto.JobTitleRequest) error {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Allowance.IsNegative() {
		return domain.ErrInvalidInput
	}
	coef := decimal.NewFromInt(1)
	if in.SalaryCoefficient != nil {
		coef = *in.SalaryCoefficient
	}
	if !coef.IsPositive() {
		return domain.ErrInvalidInput
	}
	jt.Name = name
	jt.Allowance = in.Allowance.Round(2)
	jt.SalaryCoefficient = coef
	jt.Note = in.Note
	return nil
}

func toJobTitleResponse(jt *entity.JobTitle) *dto.JobTitleResponse {
	return &dto.JobTitleResponse{
		ID:                jt.ID,
		Name:              jt.Name,
		Allowance:         jt.Allowance,
		SalaryCoefficient: jt.SalaryCoefficient,
		Note:              jt.Note,
	}
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:         e.ID,
		FullName:   e.FullName,
		JobTitleID: e.JobTitleID,
		Phone:      e.Phone,
		Address:    e.Address,
	}
}

func toSalaryParameterResponse(p *entity.SalaryParameter) *dto.SalaryParameterResponse {
	return &dto.SalaryParameterResponse{
		ID:            p.ID,
		Name:          p.Name,
		NumericValue:  p.NumericValue,
		TextValue:     p.TextValue,
		EffectiveDate: p.EffectiveDate,
		Note:          p.Note,
	}
}
