package storage

import "playstore-analytics/models"

// AggregateWriter is the interface any storage backend must satisfy.
type AggregateWriter interface {
	Write(report *models.Report) error
	Close() error
}
