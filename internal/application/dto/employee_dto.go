package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobTitleRequest body para crear/actualizar un cargo.
// SalaryCoefficient nil = 1.
type JobTitleRequest struct {
	Name              string           `json:"name"`
	Allowance         decimal.Decimal  `json:"allowance"`
	SalaryCoefficient *decimal.Decimal `json:"salary_coefficient,omitempty"`
	Note              string           `json:"note"`
}

// JobTitleResponse cargo en respuestas.
type JobTitleResponse struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Allowance         decimal.Decimal `json:"allowance"`
	SalaryCoefficient decimal.Decimal `json:"salary_coefficient"`
	Note              string          `json:"note"`
}

// CreateEmployeeRequest body para POST /api/employees.
type CreateEmployeeRequest struct {
	FullName   string `json:"full_name"`
	JobTitleID int64  `json:"job_title_id"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// UpdateEmployeeRequest actualización parcial de un empleado.
type UpdateEmployeeRequest struct {
	FullName   *string `json:"full_name"`
	JobTitleID *int64  `json:"job_title_id"`
	Phone      *string `json:"phone"`
	Address    *string `json:"address"`
}

// EmployeeResponse empleado en respuestas.
type EmployeeResponse struct {
	ID         int64  `json:"id"`
	FullName   string `json:"full_name"`
	JobTitleID int64  `json:"job_title_id"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
}

// SalaryResponse salario calculado: BaseSalary × Coefficient + Allowance.
type SalaryResponse struct {
	EmployeeID  int64           `json:"employee_id"`
	JobTitle    string          `json:"job_title"`
	BaseSalary  decimal.Decimal `json:"base_salary"`
	Coefficient decimal.Decimal `json:"coefficient"`
	Allowance   decimal.Decimal `json:"allowance"`
	Salary      decimal.Decimal `json:"salary"`
}

// SalaryParameterRequest body para POST /api/salary-parameters.
type SalaryParameterRequest struct {
	Name          string           `json:"name"`
	NumericValue  *decimal.Decimal `json:"numeric_value,omitempty"`
	TextValue     string           `json:"text_value,omitempty"`
	EffectiveDate string           `json:"effective_date"` // YYYY-MM-DD
	Note          string           `json:"note,omitempty"`
}

// SalaryParameterResponse parámetro de nómina en respuestas.
type SalaryParameterResponse struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	NumericValue  *decimal.Decimal `json:"numeric_value,omitempty"`
	TextValue     string           `json:"text_value,omitempty"`
	EffectiveDate time.Time        `json:"effective_date"`
	Note          string           `json:"note,omitempty"`
}
