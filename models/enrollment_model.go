package models

import "time"

const (
	EnrollmentPending  = "pending"
	EnrollmentComplete = "complete"
)

// Enrollment tracks a student's checkout of a published course.
type Enrollment struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id" bson:"id"`
	SessionID    string    `gorm:"size:255;not null;uniqueIndex" json:"sessionId" bson:"sessionId"`
	StudentEmail string    `gorm:"size:255;not null;index" json:"studentEmail" bson:"studentEmail"`
	StudentName  string    `gorm:"size:255" json:"studentName" bson:"studentName"`
	CourseName   string    `gorm:"size:255;not null" json:"courseName" bson:"courseName"`
	TeacherEmail string    `gorm:"size:255;not null" json:"teacherEmail" bson:"teacherEmail"`
	Status       string    `gorm:"size:20;not null;default:'pending'" json:"status" bson:"status"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
