package models

import "time"

type Course struct {
	CourseName string   `json:"courseName" bson:"courseName" validate:"required"`
	Chapters   []string `json:"chapters" bson:"chapters"`
}

type Subject struct {
	SubjectName string   `json:"subjectName" bson:"subjectName" validate:"required"`
	Courses     []Course `json:"courses" bson:"courses" validate:"dive"`
}

// TrialMaterial is a supplementary link offered to students before they
// enroll. Either link may be empty.
type TrialMaterial struct {
	DocLink   string `json:"docLink,omitempty" bson:"docLink,omitempty" validate:"omitempty,url"`
	VideoLink string `json:"videoLink,omitempty" bson:"videoLink,omitempty" validate:"omitempty,url"`
}

// Teacher is keyed by email, the identity handed over by the auth provider.
type Teacher struct {
	Email            string          `json:"email" bson:"email"`
	Username         string          `json:"username" bson:"username"`
	Experience       string          `json:"experience" bson:"experience"`
	Subjects         []Subject       `json:"subjects" bson:"subjects"`
	ProfilePhotoPath string          `json:"profilePhotoPath" bson:"profilePhotoPath"`
	DraftCard        *Card           `json:"profileCardDetails,omitempty" bson:"profileCardDetails,omitempty"`
	PublishedCard    *Card           `json:"publishedCard,omitempty" bson:"publishedCard,omitempty"`
	PublishedAt      *time.Time      `json:"publishedAt,omitempty" bson:"publishedAt,omitempty"`
	TrialMaterials   []TrialMaterial `json:"trialMaterials" bson:"trialMaterials"`
	CreatedAt        time.Time       `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt" bson:"updatedAt"`
}

// TeacherProfile is the editable, non-card part of a teacher record.
type TeacherProfile struct {
	Username         string    `json:"username" validate:"required"`
	Experience       string    `json:"experience"`
	Subjects         []Subject `json:"subjects" validate:"dive"`
	ProfilePhotoPath string    `json:"profilePhotoPath"`
}
