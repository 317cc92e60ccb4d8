package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/models"
)

func TestGetMaterialsByUnknownCourse(t *testing.T) {
	svc := NewTrialMaterialService(database.NewMemoryStore())

	_, err := svc.GetMaterialsByCourse(ctx, "Nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetMaterialsByCourseWithoutMaterials(t *testing.T) {
	store := database.NewMemoryStore()
	_, err := NewCardService(store).Publish(ctx, "t@x.com", fullCard())
	require.NoError(t, err)

	materials, err := NewTrialMaterialService(store).GetMaterialsByCourse(ctx, "C1")
	require.NoError(t, err)
	assert.NotNil(t, materials)
	assert.Empty(t, materials)
}

func TestGetMaterialsMatchesPublishedCourseOnly(t *testing.T) {
	store := database.NewMemoryStore()
	_, err := NewCardService(store).SaveDraft(ctx, "t@x.com", fullCard())
	require.NoError(t, err)

	_, err = NewTrialMaterialService(store).GetMaterialsByCourse(ctx, "C1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSetMaterialsReplacesList(t *testing.T) {
	store := database.NewMemoryStore()
	_, err := NewCardService(store).Publish(ctx, "t@x.com", fullCard())
	require.NoError(t, err)
	svc := NewTrialMaterialService(store)

	_, err = svc.SetMaterials(ctx, "t@x.com", []models.TrialMaterial{
		{DocLink: "https://docs.test/a"},
		{VideoLink: "https://video.test/b"},
	})
	require.NoError(t, err)

	teacher, err := svc.SetMaterials(ctx, "t@x.com", []models.TrialMaterial{
		{DocLink: "https://docs.test/c", VideoLink: " "},
		{DocLink: "", VideoLink: ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []models.TrialMaterial{{DocLink: "https://docs.test/c"}}, teacher.TrialMaterials)

	materials, err := svc.GetMaterialsByCourse(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, teacher.TrialMaterials, materials)
}

func TestSetMaterialsRejectsInvalidLinks(t *testing.T) {
	store := database.NewMemoryStore()
	svc := NewTrialMaterialService(store)

	_, err := svc.SetMaterials(ctx, "t@x.com", []models.TrialMaterial{{DocLink: "not a url"}})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = store.FindTeacher(ctx, "t@x.com")
	assert.True(t, apperrors.IsNotFound(err))
}
