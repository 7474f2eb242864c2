package models

import "time"

type Lesson struct {
	ID       int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	CourseID int64  `json:"course" gorm:"not null;index"`
	Name     string `json:"name" gorm:"not null"`
	// Path of the uploaded video below the media root.
	Video     string    `json:"video" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Course   *Course   `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;"`
	Ratings  []Rating  `json:"-" gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE;"`
}

func (Lesson) TableName() string {
	return "lessons"
}
