package models

import "time"

type Student struct {
	Email     string    `gorm:"size:255;primaryKey" json:"email" bson:"email"`
	Username  string    `gorm:"size:255;not null" json:"username" bson:"username"`
	Subjects  []string  `gorm:"serializer:json;type:jsonb" json:"subjects" bson:"subjects"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
