package model

import "time"

type Post struct {
	ID               uint64    `gorm:"primaryKey"`
	AuthorID         uint64    `gorm:"not null;index:idx_author_time,priority:1"`
	Caption          string    `gorm:"type:text"`
	Genre            string    `gorm:"size:64;index"`
	MyInstrument     string    `gorm:"size:64"`
	TargetInstrument string    `gorm:"size:64;index"`
	Tags             string    `gorm:"size:255"` // 逗号分隔
	MediaPath        string    `gorm:"size:255"`
	CreatedAt        time.Time `gorm:"index:idx_author_time,priority:2,sort:desc;index:idx_created_at,sort:desc"`
	UpdatedAt        time.Time
}

type ShowcaseItem struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_showcase_user_time,priority:1"`
	MediaPath string    `gorm:"size:255;not null"`
	CreatedAt time.Time `gorm:"index:idx_showcase_user_time,priority:2,sort:desc"`
}

func (ShowcaseItem) TableName() string { return "showcase_items" }
