package dto

import (
	"time"

	"github.com/google/uuid"
)

// StatusCounts is the status histogram. Total includes statuses outside the named buckets.
type StatusCounts struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Approved   int64 `json:"approved"`
	Rejected   int64 `json:"rejected"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
}

type ChangesSummary struct {
	Count               int64      `json:"count"`
	MostRecentID        *uuid.UUID `json:"mostRecentId"`
	MostRecentCreatedAt *time.Time `json:"mostRecentCreatedAt"`
}
