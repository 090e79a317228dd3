package settings

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

const (
	GroupGeneral    = "general"
	GroupContact    = "contact"
	GroupSocial     = "social"
	GroupSEO        = "seo"
	GroupAppearance = "appearance"
)

var Groups = []string{GroupGeneral, GroupContact, GroupSocial, GroupSEO, GroupAppearance}

// Setting is one site-wide key. Value holds any JSON document.
type Setting struct {
	ID        uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Key       string         `gorm:"column:key;size:100;uniqueIndex;not null" json:"key"`
	Group     string         `gorm:"column:group_name;size:30;index;not null" json:"group"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Snapshot is the public view of every setting grouped by group then key.
type Snapshot struct {
	Groups    map[string]map[string]json.RawMessage
	UpdatedAt time.Time
	Checksum  string
}

type defaultSetting struct {
	Group string
	Value any
}

// Defaults are seeded on first run and decide the group of known keys.
var Defaults = map[string]defaultSetting{
	"site_name":           {GroupGeneral, "School Website"},
	"site_short_name":     {GroupGeneral, "School"},
	"site_description":    {GroupGeneral, "Official website of the school"},
	"school_motto":        {GroupGeneral, ""},
	"principal_name":      {GroupGeneral, ""},
	"contact_email":       {GroupContact, "info@school.sch.id"},
	"contact_phone":       {GroupContact, ""},
	"address":             {GroupContact, ""},
	"maps_embed_url":      {GroupContact, ""},
	"facebook_url":        {GroupSocial, ""},
	"instagram_url":       {GroupSocial, ""},
	"youtube_url":         {GroupSocial, ""},
	"meta_title":          {GroupSEO, "School Website"},
	"meta_keywords":       {GroupSEO, []string{"school", "education"}},
	"google_analytics_id": {GroupSEO, ""},
	"logo_url":            {GroupAppearance, ""},
	"favicon_url":         {GroupAppearance, ""},
	"theme_color":         {GroupAppearance, "#1d4ed8"},
	"background_color":    {GroupAppearance, "#ffffff"},
}
