package querybuilder

import (
	"fmt"
	"strings"
)

type assignment struct {
	column string
	value  any
	expr   string
	isExpr bool
}

type UpdateBuilder struct {
	table     string
	sets      []assignment
	where     []Condition
	returning []string
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, value: value})
	return b
}

// SetExpr assigns a SQL expression; each ? in expr binds the next arg.
func (b *UpdateBuilder) SetExpr(column, expr string, args ...any) *UpdateBuilder {
	b.sets = append(b.sets, assignment{column: column, expr: expr, value: args, isExpr: true})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

// ToSQL refuses to build an unconditional update.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("update table is required")
	}
	if len(b.sets) == 0 {
		return "", nil, fmt.Errorf("update sets are required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("update conditions are required")
	}

	var buf strings.Builder
	buf.WriteString("UPDATE " + b.table + " SET ")

	args := make([]any, 0, len(b.sets)+len(b.where))
	for i, s := range b.sets {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(s.column + " = ")
		if s.isExpr {
			exprArgs, _ := s.value.([]any)
			bound, err := bindExpr(s.expr, exprArgs, &args)
			if err != nil {
				return "", nil, fmt.Errorf("set %s: %w", s.column, err)
			}
			buf.WriteString(bound)
			continue
		}
		args = append(args, s.value)
		buf.WriteString(placeholder(len(args)))
	}

	appendWhere(&buf, b.where, &args)
	if len(b.returning) > 0 {
		buf.WriteString(" RETURNING " + strings.Join(b.returning, ", "))
	}
	return buf.String(), args, nil
}
