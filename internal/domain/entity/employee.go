package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobTitle cargo con su coeficiente salarial y subsidio.
type JobTitle struct {
	ID                int64
	Name              string
	Allowance         decimal.Decimal
	SalaryCoefficient decimal.Decimal
	Note              string
}

// Employee empleado que emite facturas.
type Employee struct {
	ID         int64
	FullName   string
	JobTitleID int64
	Phone      string
	Address    string
}

// BaseSalaryParameter nombre del parámetro con el salario base vigente.
const BaseSalaryParameter = "LuongCoBan"

// SalaryParameter parámetro de nómina con fecha de vigencia.
type SalaryParameter struct {
	ID            int64
	Name          string
	NumericValue  *decimal.Decimal
	TextValue     string
	EffectiveDate time.Time
	Note          string
}
