package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	apperrors "agricli/internal/errors"
	"agricli/internal/store"
)

// QueryService exposes the canned query menu backed by the store.
type QueryService struct {
	store  *store.Store
	logger *slog.Logger
}

// NewQueryService creates a new query service
func NewQueryService(s *store.Store, logger *slog.Logger) *QueryService {
	return &QueryService{
		store:  s,
		logger: logger.With(slog.String("service", "query")),
	}
}

// IsUnknownQuery reports whether the error denotes a query ID not on the
// menu, anywhere in the wrap chain.
func IsUnknownQuery(err error) bool {
	var appErr *apperrors.AppError
	return errors.As(err, &appErr) && appErr.Type == apperrors.ErrTypeNotFound
}

// ListQueries returns the canned query menu.
func (s *QueryService) ListQueries(ctx context.Context) []store.Query {
	return s.store.Queries()
}

// Execute runs the canned query with the given ID.
func (s *QueryService) Execute(ctx context.Context, id string) (*store.ResultSet, error) {
	if _, ok := s.store.QueryByID(id); !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("query %s", id))
	}

	start := time.Now()
	result, err := s.store.Execute(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query %s: %w", id, err)
	}

	s.logger.InfoContext(ctx, "query executed",
		slog.String("id", id),
		slog.Int("rows", len(result.Rows)),
		slog.Duration("duration", time.Since(start)))

	return result, nil
}

// Summary returns shape statistics of the loaded table.
func (s *QueryService) Summary(ctx context.Context) (*store.Summary, error) {
	summary, err := s.store.Summarize(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build summary: %w", err)
	}
	return summary, nil
}
