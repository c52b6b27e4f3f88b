package repository

import (
	"context"
	"database/sql"
	"strings"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx so read helpers can run
// inside or outside a transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

// Page is the pagination window shared by list endpoints.
type Page struct {
	Page     int
	PageSize int
}

// NewPage clamps page to >= 1 and size to 1..100 (default 20).
func NewPage(page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 20
	}
	if size > 100 {
		size = 100
	}
	return Page{Page: page, PageSize: size}
}

func (p Page) limitOffset() (int, int) {
	if p.PageSize == 0 {
		p = NewPage(p.Page, p.PageSize)
	}
	return p.PageSize, (p.Page - 1) * p.PageSize
}

// where accumulates AND-ed conditions with their arguments.
type where struct {
	conds []string
	args  []any
}

func (w *where) add(cond string, args ...any) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, args...)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// affected turns a zero-row UPDATE/DELETE into notFound.
func affected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
