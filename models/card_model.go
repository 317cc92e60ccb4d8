package models

import (
	"strings"
	"time"
)

// Card is the public-facing course card. Draft and published cards share
// this shape; the contact fields are optional and only shown on the
// extended profile view.
type Card struct {
	Name           string `gorm:"size:255" json:"name" bson:"name" validate:"required"`
	Specialization string `gorm:"size:255" json:"specialization" bson:"specialization" validate:"required"`
	Subject        string `gorm:"size:255" json:"subject" bson:"subject" validate:"required"`
	CourseName     string `gorm:"size:255" json:"courseName" bson:"courseName" validate:"required"`
	CourseLength   string `gorm:"size:100" json:"courseLength" bson:"courseLength" validate:"required"`
	Photo          string `gorm:"type:text" json:"photo" bson:"photo" validate:"required"`
	CardPhoto      string `gorm:"type:text" json:"cardPhoto" bson:"cardPhoto" validate:"required"`

	Email       string `gorm:"size:255" json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber string `gorm:"size:50" json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	Location    string `gorm:"size:255" json:"location,omitempty" bson:"location,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (c Card) Trimmed() Card {
	return Card{
		Name:           strings.TrimSpace(c.Name),
		Specialization: strings.TrimSpace(c.Specialization),
		Subject:        strings.TrimSpace(c.Subject),
		CourseName:     strings.TrimSpace(c.CourseName),
		CourseLength:   strings.TrimSpace(c.CourseLength),
		Photo:          strings.TrimSpace(c.Photo),
		CardPhoto:      strings.TrimSpace(c.CardPhoto),
		Email:          strings.TrimSpace(c.Email),
		PhoneNumber:    strings.TrimSpace(c.PhoneNumber),
		Location:       strings.TrimSpace(c.Location),
	}
}

// PublishedCard is a published card as served to public listings.
type PublishedCard struct {
	Card
	TeacherEmail string `json:"teacherEmail"`
}

// Publication is one entry of a teacher's publish history.
type Publication struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id" bson:"id"`
	TeacherEmail string    `gorm:"size:255;not null;index" json:"teacherEmail" bson:"teacherEmail"`
	Card         Card      `gorm:"embedded;embeddedPrefix:card_" json:"card" bson:"card"`
	PublishedAt  time.Time `gorm:"not null;index" json:"publishedAt" bson:"publishedAt"`
}
