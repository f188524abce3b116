package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que los repositorios traducen a errores de dominio.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation códigos, ids de control o de solicitud repetidos.
func isUniqueViolation(err error) bool { return pgErrorCode(err) == codeUniqueViolation }

// isCheckViolation alguna guarda de cantidades no negativas de la tabla.
func isCheckViolation(err error) bool { return pgErrorCode(err) == codeCheckViolation }

// nullString guarda "" como NULL.
func nullString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}
