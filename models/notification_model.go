package models

import "time"

// Notification records that a student enrolled in one of a teacher's
// courses. Entries are never updated or deleted.
type Notification struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id" bson:"id"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex" json:"-" bson:"-"`
	CourseName  string    `gorm:"size:255;not null" json:"courseName" bson:"courseName"`
	TeacherName string    `gorm:"size:255;not null;index" json:"teacherName" bson:"teacherName"`
	StudentID   string    `gorm:"size:255;not null" json:"studentId" bson:"studentId"`
	StudentName string    `gorm:"size:255" json:"studentName" bson:"studentName"`
	Timestamp   time.Time `gorm:"not null;index" json:"timestamp" bson:"timestamp"`
}
