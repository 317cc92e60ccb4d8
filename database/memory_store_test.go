package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/models"
)

var ctx = context.Background()

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.UpsertTeacherProfile(ctx, "t@x.com", models.TeacherProfile{
		Username: "t",
		Subjects: []models.Subject{{SubjectName: "Math", Courses: []models.Course{{CourseName: "C1"}}}},
	})
	require.NoError(t, err)

	got, err := s.FindTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	got.Subjects[0].Courses[0].CourseName = "mutated"

	again, err := s.FindTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	assert.Equal(t, "C1", again.Subjects[0].Courses[0].CourseName)
}

func TestMemoryStoreProfileKeepsCards(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.UpsertDraftCard(ctx, "t@x.com", models.Card{Name: "A"})
	require.NoError(t, err)
	teacher, err := s.UpsertTeacherProfile(ctx, "t@x.com", models.TeacherProfile{Username: "t"})
	require.NoError(t, err)
	require.NotNil(t, teacher.DraftCard)
	assert.Equal(t, "A", teacher.DraftCard.Name)
	assert.Nil(t, teacher.PublishedCard)
}

func TestMemoryStorePublishedLookup(t *testing.T) {
	s := NewMemoryStore()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.UpsertDraftCard(ctx, "draft@x.com", models.Card{CourseName: "C1"})
	require.NoError(t, err)
	_, err = s.UpsertPublishedCard(ctx, "pub@x.com", models.Publication{
		ID: "p1", TeacherEmail: "pub@x.com", Card: models.Card{CourseName: "C1"}, PublishedAt: at,
	})
	require.NoError(t, err)

	teachers, err := s.ListPublishedTeachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 1)
	assert.Equal(t, "pub@x.com", teachers[0].Email)
	require.NotNil(t, teachers[0].PublishedAt)
	assert.Equal(t, at, *teachers[0].PublishedAt)

	found, err := s.FindTeacherByPublishedCourse(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, "pub@x.com", found.Email)

	_, err = s.FindTeacherByPublishedCourse(ctx, "c1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMemoryStoreNotificationOrder(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, n := range []models.Notification{
		{ID: "a", TeacherName: "t", Timestamp: base},
		{ID: "b", TeacherName: "t", Timestamp: base.Add(time.Minute)},
		{ID: "c", TeacherName: "t", Timestamp: base},
		{ID: "d", TeacherName: "other", Timestamp: base.Add(time.Hour)},
	} {
		n := n
		require.NoError(t, s.CreateNotification(ctx, &n))
	}

	list, err := s.ListNotificationsByTeacher(ctx, "t")
	require.NoError(t, err)
	ids := make([]string, len(list))
	for i, n := range list {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"b", "c", "a"}, ids)
}

func TestMemoryStoreEnrollments(t *testing.T) {
	s := NewMemoryStore()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	e := &models.Enrollment{ID: "e1", SessionID: "cs_1", StudentEmail: "s@x.com", Status: models.EnrollmentPending, CreatedAt: now}
	require.NoError(t, s.CreateEnrollment(ctx, e))

	err := s.CreateEnrollment(ctx, &models.Enrollment{ID: "e2", SessionID: "cs_1"})
	assert.True(t, apperrors.IsStorage(err))

	updated, moved, err := s.TransitionEnrollment(ctx, "e1", models.EnrollmentPending, models.EnrollmentComplete, now.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, models.EnrollmentComplete, updated.Status)

	again, moved, err := s.TransitionEnrollment(ctx, "e1", models.EnrollmentPending, models.EnrollmentComplete, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, now.Add(time.Minute), again.UpdatedAt)

	found, err := s.FindEnrollmentBySession(ctx, "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentComplete, found.Status)

	_, _, err = s.TransitionEnrollment(ctx, "missing", models.EnrollmentPending, models.EnrollmentComplete, now)
	assert.True(t, apperrors.IsNotFound(err))

	list, err := s.ListEnrollmentsByStudent(ctx, "s@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryStoreStudentKeepsCreatedAt(t *testing.T) {
	s := NewMemoryStore()
	first := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }

	_, err := s.UpsertStudent(ctx, models.Student{Email: "s@x.com", Username: "a"})
	require.NoError(t, err)

	s.now = func() time.Time { return first.Add(time.Hour) }
	st, err := s.UpsertStudent(ctx, models.Student{Email: "s@x.com", Username: "b"})
	require.NoError(t, err)
	assert.Equal(t, first, st.CreatedAt)
	assert.Equal(t, first.Add(time.Hour), st.UpdatedAt)
	assert.Equal(t, "b", st.Username)
}

func TestMemoryStoreFailedPublishKeepsPreviousCard(t *testing.T) {
	s := NewMemoryStore()
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.UpsertPublishedCard(ctx, "t@x.com", models.Publication{
		ID: "p1", TeacherEmail: "t@x.com", Card: models.Card{CourseName: "C1"}, PublishedAt: at,
	})
	require.NoError(t, err)

	_, err = s.UpsertPublishedCard(ctx, "t@x.com", models.Publication{
		ID: "p1", TeacherEmail: "t@x.com", Card: models.Card{CourseName: "C2"}, PublishedAt: at.Add(time.Hour),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))

	teacher, err := s.FindTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	assert.Equal(t, "C1", teacher.PublishedCard.CourseName)
	assert.Equal(t, at, *teacher.PublishedAt)

	pubs, err := s.ListPublications(ctx, "t@x.com")
	require.NoError(t, err)
	assert.Len(t, pubs, 1)
}
