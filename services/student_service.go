package services

import (
	"context"
	"strings"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/models"
)

type StudentService struct {
	store database.StudentStore
}

func NewStudentService(store database.StudentStore) *StudentService {
	return &StudentService{store: store}
}

// SaveStudent records the student's username and the subjects they follow.
// Blank and repeated subjects are dropped.
func (s *StudentService) SaveStudent(ctx context.Context, email, username string, subjects []string) (*models.Student, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError([]string{"username"})
	}

	seen := make(map[string]bool, len(subjects))
	clean := make([]string, 0, len(subjects))
	for _, sub := range subjects {
		sub = strings.TrimSpace(sub)
		if sub == "" || seen[sub] {
			continue
		}
		seen[sub] = true
		clean = append(clean, sub)
	}

	return s.store.UpsertStudent(ctx, models.Student{Email: email, Username: username, Subjects: clean})
}

func (s *StudentService) GetStudent(ctx context.Context, email string) (*models.Student, error) {
	return s.store.FindStudent(ctx, email)
}
