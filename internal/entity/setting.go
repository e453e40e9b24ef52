package entity

// SiteSetting is a key/value configuration row with upsert semantics: the key
// identifies the row.
type SiteSetting struct {
	Key         string  `gorm:"primaryKey;size:100" json:"key"`
	Value       string  `gorm:"type:text;not null" json:"value"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
}
