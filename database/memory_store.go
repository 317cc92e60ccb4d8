package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/models"
)

// MemoryStore keeps every collection in process memory. It backs local
// development (STORE_DRIVER=memory) and the test suites.
type MemoryStore struct {
	mu            sync.RWMutex
	teachers      map[string]*models.Teacher
	teacherOrder  []string
	publications  []models.Publication
	notifications []models.Notification
	students      map[string]*models.Student
	enrollments   []*models.Enrollment
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teachers: make(map[string]*models.Teacher),
		students: make(map[string]*models.Student),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Close(context.Context) error { return nil }

// teacherFor returns the stored teacher, creating it when absent. Callers
// must hold the write lock.
func (s *MemoryStore) teacherFor(email string) *models.Teacher {
	t, ok := s.teachers[email]
	if !ok {
		now := s.now()
		t = &models.Teacher{
			Email:          email,
			Subjects:       []models.Subject{},
			TrialMaterials: []models.TrialMaterial{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		s.teachers[email] = t
		s.teacherOrder = append(s.teacherOrder, email)
	}
	return t
}

func (s *MemoryStore) UpsertTeacherProfile(_ context.Context, email string, profile models.TeacherProfile) (*models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teacherFor(email)
	t.Username = profile.Username
	t.Experience = profile.Experience
	t.Subjects = copySubjects(profile.Subjects)
	t.ProfilePhotoPath = profile.ProfilePhotoPath
	t.UpdatedAt = s.now()
	return copyTeacher(t), nil
}

func (s *MemoryStore) FindTeacher(_ context.Context, email string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.teachers[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("teacher", email)
	}
	return copyTeacher(t), nil
}

func (s *MemoryStore) UpsertDraftCard(_ context.Context, email string, card models.Card) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teacherFor(email)
	c := card
	t.DraftCard = &c
	t.UpdatedAt = s.now()
	out := c
	return &out, nil
}

func (s *MemoryStore) UpsertPublishedCard(_ context.Context, email string, pub models.Publication) (*models.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.publications {
		if existing.ID == pub.ID {
			return nil, apperrors.NewStorageError("publish card", errDuplicatePublication)
		}
	}

	t := s.teacherFor(email)
	c := pub.Card
	at := pub.PublishedAt
	t.PublishedCard = &c
	t.PublishedAt = &at
	t.UpdatedAt = s.now()
	s.publications = append(s.publications, pub)
	out := c
	return &out, nil
}

func (s *MemoryStore) ListPublishedTeachers(_ context.Context) ([]models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Teacher{}
	for _, email := range s.teacherOrder {
		if t := s.teachers[email]; t.PublishedCard != nil {
			out = append(out, *copyTeacher(t))
		}
	}
	return out, nil
}

func (s *MemoryStore) FindTeacherByPublishedCourse(_ context.Context, courseName string) (*models.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, email := range s.teacherOrder {
		t := s.teachers[email]
		if t.PublishedCard != nil && t.PublishedCard.CourseName == courseName {
			return copyTeacher(t), nil
		}
	}
	return nil, apperrors.NewNotFoundError("course", courseName)
}

func (s *MemoryStore) UpsertTrialMaterials(_ context.Context, email string, materials []models.TrialMaterial) (*models.Teacher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.teacherFor(email)
	t.TrialMaterials = append([]models.TrialMaterial{}, materials...)
	t.UpdatedAt = s.now()
	return copyTeacher(t), nil
}

func (s *MemoryStore) ListPublications(_ context.Context, email string) ([]models.Publication, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Publication{}
	for i := len(s.publications) - 1; i >= 0; i-- {
		if s.publications[i].TeacherEmail == email {
			out = append(out, s.publications[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})
	return out, nil
}

func (s *MemoryStore) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n.Seq = int64(len(s.notifications) + 1)
	s.notifications = append(s.notifications, *n)
	return nil
}

func (s *MemoryStore) ListNotificationsByTeacher(_ context.Context, teacherName string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Notification{}
	for _, n := range s.notifications {
		if n.TeacherName == teacherName {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Seq > out[j].Seq
	})
	return out, nil
}

func (s *MemoryStore) UpsertStudent(_ context.Context, st models.Student) (*models.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	existing, ok := s.students[st.Email]
	if !ok {
		st.CreatedAt = now
	} else {
		st.CreatedAt = existing.CreatedAt
	}
	st.Subjects = append([]string{}, st.Subjects...)
	st.UpdatedAt = now
	s.students[st.Email] = &st
	out := st
	return &out, nil
}

func (s *MemoryStore) FindStudent(_ context.Context, email string) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.students[email]
	if !ok {
		return nil, apperrors.NewNotFoundError("student", email)
	}
	out := *st
	out.Subjects = append([]string{}, st.Subjects...)
	return &out, nil
}

func (s *MemoryStore) CreateEnrollment(_ context.Context, e *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.enrollments {
		if existing.SessionID == e.SessionID {
			return apperrors.NewStorageError("create enrollment", errDuplicateSession)
		}
	}
	stored := *e
	s.enrollments = append(s.enrollments, &stored)
	return nil
}

func (s *MemoryStore) FindEnrollmentBySession(_ context.Context, sessionID string) (*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.enrollments {
		if e.SessionID == sessionID {
			out := *e
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("checkout session", sessionID)
}

func (s *MemoryStore) TransitionEnrollment(_ context.Context, id, from, to string, at time.Time) (*models.Enrollment, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.enrollments {
		if e.ID != id {
			continue
		}
		moved := e.Status == from
		if moved {
			e.Status = to
			e.UpdatedAt = at
		}
		out := *e
		return &out, moved, nil
	}
	return nil, false, apperrors.NewNotFoundError("enrollment", id)
}

func (s *MemoryStore) ListEnrollmentsByStudent(_ context.Context, email string) ([]models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Enrollment{}
	for i := len(s.enrollments) - 1; i >= 0; i-- {
		if s.enrollments[i].StudentEmail == email {
			out = append(out, *s.enrollments[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func copySubjects(in []models.Subject) []models.Subject {
	out := make([]models.Subject, len(in))
	for i, sub := range in {
		out[i] = models.Subject{SubjectName: sub.SubjectName, Courses: make([]models.Course, len(sub.Courses))}
		for j, c := range sub.Courses {
			out[i].Courses[j] = models.Course{CourseName: c.CourseName, Chapters: append([]string{}, c.Chapters...)}
		}
	}
	return out
}

func copyTeacher(t *models.Teacher) *models.Teacher {
	out := *t
	out.Subjects = copySubjects(t.Subjects)
	out.TrialMaterials = append([]models.TrialMaterial{}, t.TrialMaterials...)
	if t.DraftCard != nil {
		c := *t.DraftCard
		out.DraftCard = &c
	}
	if t.PublishedCard != nil {
		c := *t.PublishedCard
		out.PublishedCard = &c
	}
	if t.PublishedAt != nil {
		at := *t.PublishedAt
		out.PublishedAt = &at
	}
	return &out
}
