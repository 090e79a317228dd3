package settings

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"time"

	"school-cms-api/internal/apperr"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_.]{0,99}$`)

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// NormalizeGroup maps unknown or blank groups to general.
func NormalizeGroup(g string) string {
	g = strings.ToLower(strings.TrimSpace(g))
	for _, known := range Groups {
		if g == known {
			return g
		}
	}
	return GroupGeneral
}

func byGroupAndKey(q *gorm.DB) *gorm.DB {
	return q.Order(clause.OrderByColumn{Column: clause.Column{Name: "group_name"}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}})
}

func (s *SettingsService) all(ctx context.Context) ([]Setting, error) {
	rows := []Setting{}
	err := s.DB.WithContext(ctx).Scopes(byGroupAndKey).Find(&rows).Error
	return rows, err
}

// Snapshot groups every setting and fingerprints the result so clients can cache it.
func (s *SettingsService) Snapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Groups: map[string]map[string]json.RawMessage{}}
	for _, g := range Groups {
		snap.Groups[g] = map[string]json.RawMessage{}
	}
	for _, row := range rows {
		group := NormalizeGroup(row.Group)
		snap.Groups[group][row.Key] = json.RawMessage(row.Value)
		if row.UpdatedAt.After(snap.UpdatedAt) {
			snap.UpdatedAt = row.UpdatedAt
		}
	}

	raw, err := json.Marshal(snap.Groups)
	if err != nil {
		return nil, err
	}
	sum := sha256.Sum256(raw)
	snap.Checksum = hex.EncodeToString(sum[:])
	return snap, nil
}

func (s *SettingsService) List(ctx context.Context, group string) ([]Setting, error) {
	if strings.TrimSpace(group) == "" {
		return s.all(ctx)
	}
	rows := []Setting{}
	err := s.DB.WithContext(ctx).
		Scopes(byGroupAndKey).
		Where(map[string]any{"group_name": NormalizeGroup(group)}).
		Find(&rows).Error
	return rows, err
}

// Update upserts values. Existing keys keep their group; new keys take group, or the group
// of a known default when group is blank.
func (s *SettingsService) Update(ctx context.Context, group string, values map[string]json.RawMessage) ([]Setting, error) {
	if len(values) == 0 {
		return nil, apperr.Invalid("settings", "at least one setting is required")
	}

	keys := make([]string, 0, len(values))
	for k, v := range values {
		if !keyPattern.MatchString(k) {
			return nil, apperr.Invalid(k, "invalid setting key %q", k)
		}
		if !json.Valid(v) {
			return nil, apperr.Invalid(k, "value of %q is not valid JSON", k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	now := time.Now().UTC()
	rows := make([]Setting, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, Setting{
			Key:       k,
			Group:     groupFor(k, group),
			Value:     datatypes.JSON(values[k]),
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rows).Error
	if err != nil {
		return nil, err
	}

	out := []Setting{}
	if err := s.DB.WithContext(ctx).
		Scopes(byGroupAndKey).
		Where(map[string]any{"key": keys}).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func groupFor(key, group string) string {
	if strings.TrimSpace(group) != "" {
		return NormalizeGroup(group)
	}
	if d, ok := Defaults[key]; ok {
		return d.Group
	}
	return GroupGeneral
}

// String returns a string setting, or fallback when it is missing, blank or not a string.
func (s *SettingsService) String(ctx context.Context, key, fallback string) string {
	var row Setting
	err := s.DB.WithContext(ctx).Where(map[string]any{"key": key}).First(&row).Error
	if err != nil {
		return fallback
	}
	var v string
	if err := json.Unmarshal(row.Value, &v); err != nil || strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

// Seed inserts the defaults that are not present yet and reports how many were added.
func (s *SettingsService) Seed(ctx context.Context) (int, error) {
	keys := make([]string, 0, len(Defaults))
	for k := range Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]Setting, 0, len(keys))
	for _, k := range keys {
		raw, err := json.Marshal(Defaults[k].Value)
		if err != nil {
			return 0, err
		}
		rows = append(rows, Setting{Key: k, Group: Defaults[k].Group, Value: datatypes.JSON(raw)})
	}

	res := s.DB.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if res.Error != nil {
		return 0, res.Error
	}
	zap.L().Info("settings seeded", zap.Int64("inserted", res.RowsAffected))
	return int(res.RowsAffected), nil
}
