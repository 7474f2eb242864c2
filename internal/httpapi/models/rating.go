package models

type Rating struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	LessonID  int64  `json:"lesson" gorm:"not null;index"`
	CreatorID string `json:"creator" gorm:"type:uuid;not null;index"`
	Liked     bool   `json:"liked" gorm:"not null"`

	// Associations
	Lesson  *Lesson `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;"`
	Creator *User   `json:"-" gorm:"foreignKey:CreatorID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
