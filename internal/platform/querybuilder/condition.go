package querybuilder

import (
	"strconv"
	"strings"
)

type Condition interface {
	appendSQL(buf *strings.Builder, args *[]any)
}

type eqCondition struct {
	column string
	value  any
	fold   bool
}

// Eq matches column = value.
func Eq(column string, value any) Condition {
	return eqCondition{column: column, value: value}
}

// EqFold matches lower(column) = lower(value). Scope columns are compared
// this way so "Riverside FC" and "riverside fc" address the same club.
func EqFold(column string, value string) Condition {
	return eqCondition{column: column, value: value, fold: true}
}

func (c eqCondition) appendSQL(buf *strings.Builder, args *[]any) {
	*args = append(*args, c.value)
	if c.fold {
		buf.WriteString("lower(" + c.column + ") = lower(" + placeholder(len(*args)) + ")")
		return
	}
	buf.WriteString(c.column + " = " + placeholder(len(*args)))
}

type literalCondition struct {
	column string
	value  string
	fold   bool
}

// EqLiteral inlines value as a quoted literal. Only for the pooler fallback
// paths.
func EqLiteral(column, value string) Condition {
	return literalCondition{column: column, value: value}
}

// EqFoldLiteral is the literal form of EqFold.
func EqFoldLiteral(column, value string) Condition {
	return literalCondition{column: column, value: strings.ToLower(value), fold: true}
}

func (c literalCondition) appendSQL(buf *strings.Builder, _ *[]any) {
	if c.fold {
		buf.WriteString("lower(" + c.column + ")")
	} else {
		buf.WriteString(c.column)
	}
	buf.WriteString(" = ")
	buf.WriteString(quoteLiteral(c.value))
}

type isNullCondition struct {
	column string
}

func IsNull(column string) Condition {
	return isNullCondition{column: column}
}

func (c isNullCondition) appendSQL(buf *strings.Builder, _ *[]any) {
	buf.WriteString(c.column + " IS NULL")
}

func appendWhere(buf *strings.Builder, conditions []Condition, args *[]any) {
	for i, c := range conditions {
		if i == 0 {
			buf.WriteString(" WHERE ")
		} else {
			buf.WriteString(" AND ")
		}
		c.appendSQL(buf, args)
	}
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// bindExpr swaps each ? in expr for the next placeholder.
func bindExpr(expr string, exprArgs []any, args *[]any) (string, error) {
	var out strings.Builder
	next := 0
	for i := 0; i < len(expr); i++ {
		if expr[i] != '?' {
			out.WriteByte(expr[i])
			continue
		}
		if next >= len(exprArgs) {
			return "", errMissingExprArg(expr)
		}
		*args = append(*args, exprArgs[next])
		out.WriteString(placeholder(len(*args)))
		next++
	}
	if next != len(exprArgs) {
		return "", errExtraExprArgs(expr, len(exprArgs)-next)
	}
	return out.String(), nil
}

func quoteLiteral(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
