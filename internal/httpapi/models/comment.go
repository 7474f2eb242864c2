package models

import "time"

type Comment struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	LessonID  int64     `json:"lesson" gorm:"not null;index"`
	CreatorID string    `json:"creator" gorm:"type:uuid;not null;index"`
	Text      string    `json:"text" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Lesson  *Lesson `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;"`
	Creator *User   `json:"-" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
