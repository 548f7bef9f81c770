package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"

	"github.com/dangerclosesec/crmboard/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// SQLSTATE codes the repositories react to.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeFeatureNotSupported = "0A000"
	classConnection         = "08"
	classResources          = "53"
	classOperatorIntervene  = "57"
)

const stalePlanMessage = "cached plan must not change result type"

// classify maps driver errors onto domain sentinels, keeping the original
// error in the chain. Errors it does not recognise are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", domain.ErrReferenceConflict, err)
	case errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}

	if code := sqlState(err); code != "" {
		switch {
		case code == codeUniqueViolation:
			return fmt.Errorf("%w: %w", domain.ErrConflict, err)
		case code == codeForeignKeyViolation:
			return fmt.Errorf("%w: %w", domain.ErrReferenceConflict, err)
		case strings.HasPrefix(code, classConnection),
			strings.HasPrefix(code, classResources),
			strings.HasPrefix(code, classOperatorIntervene):
			return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}

	// SQLite reports constraints through its message only.
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %w", domain.ErrConflict, err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %w", domain.ErrReferenceConflict, err)
	}

	return err
}

// sqlState extracts the SQLSTATE from pgx or lib/pq errors.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsStalePlan reports PostgreSQL's "cached plan must not change result type",
// raised when a pooled connection holds a prepared statement from before a
// schema change.
func IsStalePlan(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeFeatureNotSupported && strings.Contains(pgErr.Message, stalePlanMessage)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == codeFeatureNotSupported && strings.Contains(pqErr.Message, stalePlanMessage)
	}
	return strings.Contains(err.Error(), stalePlanMessage)
}

// ExecuteWithRetry runs fn and runs it once more when it failed on a stale
// cached plan. Other errors are returned as is.
func ExecuteWithRetry(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if !IsStalePlan(err) {
		return err
	}

	slog.WarnContext(ctx, "retrying after stale cached plan", "error", err)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fn(ctx)
}
