// Package query builds parameterized PostgreSQL statements from a mapping
// of entity field names to table columns.
package query

import (
	"strings"
)

// ProjectionMap ties entity field names (ID, OwnerID, Price) to the
// alias-qualified columns of one table. Field lookups ignore case.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	fields  map[string]string
	ordered []string
}

// NewProjectionMap starts a map for schema.table under alias. An empty
// schema leaves the table unqualified.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema: schema,
		table:  table,
		alias:  alias,
		fields: make(map[string]string),
	}
}

// Project maps field to column. Columns are selected in the order they
// are projected.
func (p *ProjectionMap) Project(column, field string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.fields[strings.ToLower(field)] = qualified
	p.ordered = append(p.ordered, qualified)
	return p
}

// Table renders the FROM target, e.g. "public.properties p".
func (p *ProjectionMap) Table() string {
	if p.schema == "" {
		return p.table + " " + p.alias
	}
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves field to its qualified column. Unknown names pass
// through unchanged so raw expressions still work.
func (p *ProjectionMap) Column(field string) string {
	if col, ok := p.fields[strings.ToLower(field)]; ok {
		return col
	}
	return field
}

func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ordered, ", ")
}

