package postgres

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/lib/pq"
)

const (
	codeUniqueViolation   pq.ErrorCode = "23505"
	codeInvalidStatement  pq.ErrorCode = "26000"
	codeProtocolViolation pq.ErrorCode = "08P01"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func pqCode(err error) pq.ErrorCode {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == codeUniqueViolation
}

// isPoolerStatementError reports the failures a transaction pooler causes
// when a pooled connection has lost, or reuses with another arity, the
// unnamed prepared statement. Callers retry with parameters inlined.
// Poolers relay some of these as plain text, so the message is checked too.
func isPoolerStatementError(err error) bool {
	if err == nil {
		return false
	}
	switch pqCode(err) {
	case codeInvalidStatement:
		return true
	case codeProtocolViolation:
		return strings.Contains(err.Error(), "bind message supplies")
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unnamed prepared statement does not exist") ||
		(strings.Contains(msg, "bind message supplies") && strings.Contains(msg, "prepared statement"))
}

func nullString(v string) sql.NullString {
	v = strings.TrimSpace(v)
	return sql.NullString{String: v, Valid: v != ""}
}
