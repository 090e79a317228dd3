package activitylog

import "context"

// Recorder is what content controllers need to write audit entries.
type Recorder interface {
	Log(entry ActivityLog, properties any) error
}

type LogServiceAPI interface {
	Recorder
	Search(input SearchInput) ([]Row, Aggregates, int64, int, error)
	Recent(ctx context.Context, limit int) ([]Row, error)
}

var _ LogServiceAPI = (*LogService)(nil)
