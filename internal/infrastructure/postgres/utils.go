package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de clave foránea (23503).
func isForeignKeyViolation(err error) bool {
	if code := pgCode(err); code != "" {
		return code == codeForeignKeyViolation
	}
	return strings.Contains(err.Error(), codeForeignKeyViolation)
}

// isCheckViolation verifica si un error es una violación de CHECK (23514), p.ej. stock_quantity >= 0.
func isCheckViolation(err error) bool {
	return pgCode(err) == codeCheckViolation
}

// likePattern arma el patrón ILIKE para búsqueda por subcadena escapando comodines.
func likePattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(search) + "%"
}
