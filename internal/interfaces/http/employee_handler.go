package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-backoffice/internal/application/dto"
	"github.com/jhoicas/retail-backoffice/internal/application/usecase"
	"github.com/jhoicas/retail-backoffice/internal/domain/repository"
)

// EmployeeHandler maneja cargos, empleados, salario y parámetros de nómina.
type EmployeeHandler struct {
	uc *usecase.EmployeeUseCase
}

// NewEmployeeHandler construye el handler.
func NewEmployeeHandler(uc *usecase.EmployeeUseCase) *EmployeeHandler {
	return &EmployeeHandler{uc: uc}
}

// CreateJobTitle godoc
// @Summary      Crear cargo
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body  dto.JobTitleRequest  true  "Nombre, phụ cấp (allowance), coeficiente salarial"
// @Success      201   {object}  dto.JobTitleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/job-titles [post]
func (h *EmployeeHandler) CreateJobTitle(c *fiber.Ctx) error {
	var in dto.JobTitleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateJobTitle(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *EmployeeHandler) GetJobTitle(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	out, err := h.uc.GetJobTitle(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) ListJobTitles(c *fiber.Ctx) error {
	out, err := h.uc.ListJobTitles(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) UpdateJobTitle(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	var in dto.JobTitleRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateJobTitle(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteJobTitle godoc
// @Summary      Eliminar cargo
// @Tags         staff
// @Param        id   path  int  true  "ID del cargo"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse  "El cargo tiene empleados"
// @Router       /api/job-titles/{id} [delete]
func (h *EmployeeHandler) DeleteJobTitle(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	if err := h.uc.DeleteJobTitle(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateEmployee godoc
// @Summary      Crear empleado
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEmployeeRequest  true  "Datos del empleado"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse  "Cargo inexistente"
// @Router       /api/employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var in dto.CreateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateEmployee(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	out, err := h.uc.GetEmployee(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListEmployees godoc
// @Summary      Listar empleados
// @Tags         staff
// @Produce      json
// @Param        search        query  string  false  "Subcadena del nombre"
// @Param        job_title_id  query  int     false  "Filtrar por cargo"
// @Success      200  {array}  dto.EmployeeResponse
// @Router       /api/employees [get]
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	jobTitleID, ok := queryInt64(c, "job_title_id")
	if !ok {
		return badRequest(c, "VALIDATION", "job_title_id debe ser numérico")
	}
	out, err := h.uc.ListEmployees(c.UserContext(), repository.EmployeeFilter{
		Search:     c.Query("search"),
		JobTitleID: jobTitleID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	var in dto.UpdateEmployeeRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateEmployee(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	if err := h.uc.DeleteEmployee(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Salary godoc
// @Summary      Salario del empleado
// @Description  lương cơ bản (LuongCoBan vigente) × coeficiente del cargo + phụ cấp.
// @Tags         staff
// @Produce      json
// @Param        id   path  int  true  "ID del empleado"
// @Success      200  {object}  dto.SalaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/employees/{id}/salary [get]
func (h *EmployeeHandler) Salary(c *fiber.Ctx) error {
	id, ok := pathID(c, "id")
	if !ok {
		return badRequest(c, "VALIDATION", "id inválido")
	}
	out, err := h.uc.Salary(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CreateSalaryParameter godoc
// @Summary      Registrar parámetro de nómina
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SalaryParameterRequest  true  "name, numeric_value, effective_date (YYYY-MM-DD)"
// @Success      201   {object}  dto.SalaryParameterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/salary-parameters [post]
func (h *EmployeeHandler) CreateSalaryParameter(c *fiber.Ctx) error {
	var in dto.SalaryParameterRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.CreateSalaryParameter(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *EmployeeHandler) ListSalaryParameters(c *fiber.Ctx) error {
	out, err := h.uc.ListSalaryParameters(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
