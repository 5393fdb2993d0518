package services

import (
	"context"
	"fmt"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
)

// Source is a backend the dashboard reads clients and usage records from.
type Source interface {
	Name() string
	ListClients(ctx context.Context) ([]models.Client, error)
	ListUsage(ctx context.Context, criteria models.FilterCriteria) ([]models.UsageRecord, error)
}

// FetchError reports a failed query against a Source.
type FetchError struct {
	Op     string
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to %s from %s: %v", e.Op, e.Source, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
