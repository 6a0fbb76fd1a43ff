package store

import "strings"

// qb is a minimal SQL query builder in the spirit of the upstream
// implementation's sqlx::QueryBuilder usage (original_source/src/repo.rs
// builds WHERE clauses by pushing fragments and bound placeholders one
// filter at a time); Go's sqlx has no direct equivalent, so this is the
// idiomatic stand-in.
type qb struct {
	sql  strings.Builder
	args []any
}

func newQB(base string) *qb {
	b := &qb{}
	b.sql.WriteString(base)
	return b
}

func (b *qb) where(clauses []string, args ...[]any) *qb {
	if len(clauses) == 0 {
		return b
	}
	b.sql.WriteString(" WHERE ")
	b.sql.WriteString(strings.Join(clauses, " AND "))
	for _, a := range args {
		b.args = append(b.args, a...)
	}
	return b
}

func (b *qb) append(fragment string, args ...any) *qb {
	b.sql.WriteString(fragment)
	b.args = append(b.args, args...)
	return b
}

func (b *qb) String() string { return b.sql.String() }
func (b *qb) Args() []any    { return b.args }

// clauseSet accumulates WHERE fragments and their bound args independently,
// so callers can build the list before deciding whether any filter applied.
type clauseSet struct {
	clauses []string
	args    []any
}

func (c *clauseSet) add(clause string, args ...any) {
	c.clauses = append(c.clauses, clause)
	c.args = append(c.args, args...)
}
