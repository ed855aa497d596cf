package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the part of *pgxpool.Pool the repositories need.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier is satisfied by both the pool and a pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txCtxKey struct{}

func txFromContext(ctx context.Context) (pgx.Tx, bool) {
	tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return tx, ok
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool DB
}

// conn returns the transaction carried by ctx, or the pool.
func (r *BaseRepository) conn(ctx context.Context) querier {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return r.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.FromPg(err, "failed to commit transaction")
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// WithTx runs fn in a transaction. A transaction already carried by ctx is
// reused; otherwise one is started, committed when fn succeeds and rolled
// back when it fails or panics.
func (r *BaseRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = r.Rollback(ctx, tx)
			panic(p)
		}
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	if err = fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// notFoundOr maps pgx.ErrNoRows to a not-found error with msg and wraps everything else.
func notFoundOr(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(msg)
	}
	return apperrors.FromPg(err, msg)
}

// rowScanner is implemented by pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// auditColumns lists the audit columns in the order scanAudit expects.
const auditColumns = "created_at, created_by, updated_at, updated_by, deleted_at, deleted_by"

func auditDest(a *domain.AuditFields) []any {
	return []any{&a.CreatedAt, &a.CreatedBy, &a.UpdatedAt, &a.UpdatedBy, &a.DeletedAt, &a.DeletedBy}
}

// listQuery accumulates WHERE clauses and positional arguments for list queries.
type listQuery struct {
	where []string
	args  []any
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into an ILIKE pattern that matches it
// literally anywhere in the column.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func newListQuery(companyColumn string, companyID int64) *listQuery {
	q := &listQuery{}
	q.add(companyColumn+" = $%d", companyID)
	return q
}

// add appends a clause. Every %[1]d in clause refers to arg's placeholder.
func (q *listQuery) add(clause string, arg any) {
	q.args = append(q.args, arg)
	q.where = append(q.where, fmt.Sprintf(strings.ReplaceAll(clause, "%d", "%[1]d"), len(q.args)))
}

// addRaw appends a clause without an argument.
func (q *listQuery) addRaw(clause string) {
	q.where = append(q.where, clause)
}

func (q *listQuery) whereSQL() string {
	return " WHERE " + strings.Join(q.where, " AND ")
}

// pageSQL appends ORDER BY, LIMIT and OFFSET and returns the final args.
func (q *listQuery) pageSQL(order string, filter domain.ListFilter) (string, []any) {
	args := append([]any{}, q.args...)
	sql := " ORDER BY " + order
	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset())
		sql += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	return sql, args
}

// sortOrder resolves a client sort key against the allowed columns. Unknown
// keys fall back to def. The idColumn tiebreaker keeps pages stable.
func sortOrder(filter domain.ListFilter, allowed map[string]string, def, idColumn string) string {
	column, ok := allowed[filter.SortBy]
	if !ok {
		column = def
	}
	dir := "ASC"
	if filter.SortDir == domain.SortDesc {
		dir = "DESC"
	}
	return column + " " + dir + ", " + idColumn + " " + dir
}

// commonSortColumns is the sort whitelist shared by code/name resources.
var commonSortColumns = map[string]string{
	"code":       "code",
	"name":       "name",
	"created_at": "created_at",
}
