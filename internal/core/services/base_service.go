package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/expense_admin_app/internal/apperrors"
	"github.com/SscSPs/expense_admin_app/internal/core/domain"
	portssvc "github.com/SscSPs/expense_admin_app/internal/core/ports/services"
	"github.com/SscSPs/expense_admin_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs err unless it is an expected client error.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if apperrors.KindOf(err) == apperrors.KindInternal {
		s.LogError(ctx, err, msg, keyvals...)
	}
}

// invalidateRates drops the company's cached rates. A failure only costs
// freshness until the entries expire, so it is logged and swallowed.
func (s *BaseService) invalidateRates(ctx context.Context, cache portssvc.RateCache, companyID int64) {
	if cache == nil {
		return
	}
	if err := cache.Invalidate(ctx, companyID); err != nil {
		s.LogError(ctx, err, "Failed to invalidate rate cache", slog.Int64("company_id", companyID))
	}
}

// now is the timestamp used for audit columns.
func now() time.Time {
	return time.Now().UTC()
}

// today is the calendar date used when a request leaves its date empty.
func today() time.Time {
	return domain.DateOnly(time.Now().UTC())
}

// isNotFound reports whether err is a not-found error.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
