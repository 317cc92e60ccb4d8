package services

import (
	"context"
	"strings"

	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/models"
)

type TrialMaterialService struct {
	store database.TeacherStore
}

func NewTrialMaterialService(store database.TeacherStore) *TrialMaterialService {
	return &TrialMaterialService{store: store}
}

type trialMaterials struct {
	Materials []models.TrialMaterial `json:"materials" validate:"dive"`
}

// SetMaterials replaces the teacher's trial materials. Entries with neither
// link set are dropped; links that are set must be URLs.
func (s *TrialMaterialService) SetMaterials(ctx context.Context, teacherEmail string, materials []models.TrialMaterial) (*models.Teacher, error) {
	kept := make([]models.TrialMaterial, 0, len(materials))
	for _, m := range materials {
		m.DocLink = strings.TrimSpace(m.DocLink)
		m.VideoLink = strings.TrimSpace(m.VideoLink)
		if m.DocLink == "" && m.VideoLink == "" {
			continue
		}
		kept = append(kept, m)
	}
	if err := validateStruct(trialMaterials{Materials: kept}); err != nil {
		return nil, err
	}
	return s.store.UpsertTrialMaterials(ctx, teacherEmail, kept)
}

// GetMaterialsByCourse returns the materials of the teacher whose published
// card has courseName. It fails with a NotFoundError when no published card
// matches and returns an empty slice when the teacher has none.
func (s *TrialMaterialService) GetMaterialsByCourse(ctx context.Context, courseName string) ([]models.TrialMaterial, error) {
	t, err := s.store.FindTeacherByPublishedCourse(ctx, courseName)
	if err != nil {
		return nil, err
	}
	if t.TrialMaterials == nil {
		return []models.TrialMaterial{}, nil
	}
	return t.TrialMaterials, nil
}
