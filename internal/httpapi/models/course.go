package models

type Course struct {
	ID          int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"not null;type:text"`

	// Associations
	Students []User   `json:"students,omitempty" gorm:"many2many:course_students;constraint:OnDelete:CASCADE;"`
	Lessons  []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE;"`
}

func (Course) TableName() string {
	return "courses"
}
