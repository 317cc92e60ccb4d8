package services

import (
	"context"
	"strings"

	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/models"
)

type TeacherService struct {
	store database.TeacherStore
}

func NewTeacherService(store database.TeacherStore) *TeacherService {
	return &TeacherService{store: store}
}

// SaveProfile replaces the teacher's username, experience, subjects and
// profile photo. Cards and trial materials are kept.
func (s *TeacherService) SaveProfile(ctx context.Context, teacherEmail string, profile models.TeacherProfile) (*models.Teacher, error) {
	profile.Username = strings.TrimSpace(profile.Username)
	if profile.Subjects == nil {
		profile.Subjects = []models.Subject{}
	}
	if err := validateStruct(profile); err != nil {
		return nil, err
	}
	return s.store.UpsertTeacherProfile(ctx, teacherEmail, profile)
}

func (s *TeacherService) GetTeacher(ctx context.Context, teacherEmail string) (*models.Teacher, error) {
	return s.store.FindTeacher(ctx, teacherEmail)
}
