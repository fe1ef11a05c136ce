package querybuilder

import (
	"fmt"
	"strings"
)

type DeleteBuilder struct {
	table string
	where []Condition
}

func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses to build an unconditional delete.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("delete table is required")
	}
	if len(b.where) == 0 {
		return "", nil, fmt.Errorf("delete conditions are required")
	}

	var buf strings.Builder
	buf.WriteString("DELETE FROM " + b.table)

	args := make([]any, 0, len(b.where))
	appendWhere(&buf, b.where, &args)
	return buf.String(), args, nil
}
