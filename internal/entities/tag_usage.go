package entities

import "time"

// TagUsage is a denormalized counter over the mood entries that include Tag.
type TagUsage struct {
	Tag      string    `gorm:"primaryKey;size:255" json:"tag"`
	Count    int       `gorm:"not null;default:0;index:idx_tag_usage_rank,priority:1" json:"count"`
	LastUsed time.Time `gorm:"index:idx_tag_usage_rank,priority:2" json:"lastUsed"`
}

func (TagUsage) TableName() string {
	return "tag_usage"
}
