package querybuilder

import (
	"fmt"
	"reflect"
	"strings"
)

type conflictAction int

const (
	conflictNone conflictAction = iota
	conflictDoNothing
	conflictDoUpdate
)

type InsertBuilder struct {
	table     string
	columns   []string
	rows      [][]any
	err       error
	target    []string
	predicate string
	action    conflictAction
	updates   []string
	returning []string
}

func InsertInto(table string) *InsertBuilder {
	return &InsertBuilder{table: table}
}

// InsertModel starts an insert whose columns and single row come from the
// db tags of model.
func InsertModel(table string, model any) *InsertBuilder {
	b := InsertInto(table)
	cols, vals, err := columnsAndValues(model)
	if err != nil {
		b.err = err
		return b
	}
	return b.Columns(cols...).Values(vals...)
}

func (b *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	b.columns = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) Values(values ...any) *InsertBuilder {
	b.rows = append(b.rows, append([]any(nil), values...))
	return b
}

// OnConflict names the unique index the statement resolves against. Entries
// may be expressions, e.g. "(lower(club_name))".
func (b *InsertBuilder) OnConflict(target ...string) *InsertBuilder {
	b.target = append([]string(nil), target...)
	return b
}

// ConflictWhere matches a partial unique index.
func (b *InsertBuilder) ConflictWhere(predicate string) *InsertBuilder {
	b.predicate = strings.TrimSpace(predicate)
	return b
}

func (b *InsertBuilder) DoNothing() *InsertBuilder {
	b.action = conflictDoNothing
	return b
}

// DoUpdateExcluded overwrites columns with the rejected row's values.
func (b *InsertBuilder) DoUpdateExcluded(columns ...string) *InsertBuilder {
	b.action = conflictDoUpdate
	for _, col := range columns {
		b.updates = append(b.updates, col+" = EXCLUDED."+col)
	}
	return b
}

// DoUpdateAdd adds the rejected row's values onto the stored counters.
func (b *InsertBuilder) DoUpdateAdd(columns ...string) *InsertBuilder {
	b.action = conflictDoUpdate
	for _, col := range columns {
		b.updates = append(b.updates, col+" = "+b.table+"."+col+" + EXCLUDED."+col)
	}
	return b
}

// DoUpdateRaw sets column to a parameterless SQL expression.
func (b *InsertBuilder) DoUpdateRaw(column, expr string) *InsertBuilder {
	b.action = conflictDoUpdate
	b.updates = append(b.updates, column+" = "+expr)
	return b
}

func (b *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	b.returning = append([]string(nil), columns...)
	return b
}

func (b *InsertBuilder) ToSQL() (string, []any, error) {
	if b.err != nil {
		return "", nil, b.err
	}
	if strings.TrimSpace(b.table) == "" {
		return "", nil, fmt.Errorf("insert table is required")
	}
	if len(b.columns) == 0 {
		return "", nil, fmt.Errorf("insert columns are required")
	}
	if len(b.rows) == 0 {
		return "", nil, fmt.Errorf("insert values are required")
	}

	var buf strings.Builder
	buf.WriteString("INSERT INTO " + b.table + " (" + strings.Join(b.columns, ", ") + ") VALUES ")

	args := make([]any, 0, len(b.rows)*len(b.columns))
	for rowIdx, row := range b.rows {
		if len(row) != len(b.columns) {
			return "", nil, fmt.Errorf("insert row %d has %d values, expected %d", rowIdx, len(row), len(b.columns))
		}
		if rowIdx > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for colIdx, value := range row {
			if colIdx > 0 {
				buf.WriteString(", ")
			}
			args = append(args, value)
			buf.WriteString(placeholder(len(args)))
		}
		buf.WriteString(")")
	}

	if err := b.appendConflict(&buf); err != nil {
		return "", nil, err
	}
	if len(b.returning) > 0 {
		buf.WriteString(" RETURNING " + strings.Join(b.returning, ", "))
	}
	return buf.String(), args, nil
}

func (b *InsertBuilder) appendConflict(buf *strings.Builder) error {
	if b.action == conflictNone {
		if len(b.target) > 0 {
			return fmt.Errorf("insert into %s: conflict target without action", b.table)
		}
		return nil
	}

	buf.WriteString(" ON CONFLICT")
	if len(b.target) > 0 {
		buf.WriteString(" (" + strings.Join(b.target, ", ") + ")")
		if b.predicate != "" {
			buf.WriteString(" WHERE " + b.predicate)
		}
	}

	if b.action == conflictDoNothing {
		buf.WriteString(" DO NOTHING")
		return nil
	}
	if len(b.target) == 0 {
		return fmt.Errorf("insert into %s: DO UPDATE requires a conflict target", b.table)
	}
	buf.WriteString(" DO UPDATE SET " + strings.Join(b.updates, ", "))
	return nil
}

func columnsAndValues(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, fmt.Errorf("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	cols := make([]string, 0, typ.NumField())
	vals := make([]any, 0, typ.NumField())
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		col, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		col = strings.TrimSpace(col)
		if col == "" || col == "-" {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, value.Field(i).Interface())
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("model %s has no db columns", typ.Name())
	}
	return cols, vals, nil
}
