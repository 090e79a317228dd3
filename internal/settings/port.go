package settings

import (
	"context"
	"encoding/json"
)

type SettingsServiceAPI interface {
	Snapshot(ctx context.Context) (*Snapshot, error)
	List(ctx context.Context, group string) ([]Setting, error)
	Update(ctx context.Context, group string, values map[string]json.RawMessage) ([]Setting, error)
	String(ctx context.Context, key, fallback string) string
}

var _ SettingsServiceAPI = (*SettingsService)(nil)
