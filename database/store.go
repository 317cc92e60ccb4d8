package database

import (
	"context"
	"time"

	"github.com/anjiri1684/tutor_cards/models"
)

// TeacherStore persists teacher documents keyed by email. Every Upsert*
// method creates the teacher when the key is unknown and replaces only the
// part of the document it names.
type TeacherStore interface {
	UpsertTeacherProfile(ctx context.Context, email string, profile models.TeacherProfile) (*models.Teacher, error)
	FindTeacher(ctx context.Context, email string) (*models.Teacher, error)
	UpsertDraftCard(ctx context.Context, email string, card models.Card) (*models.Card, error)
	// UpsertPublishedCard replaces the published slot and appends pub to the
	// publish history.
	UpsertPublishedCard(ctx context.Context, email string, pub models.Publication) (*models.Card, error)
	ListPublishedTeachers(ctx context.Context) ([]models.Teacher, error)
	FindTeacherByPublishedCourse(ctx context.Context, courseName string) (*models.Teacher, error)
	UpsertTrialMaterials(ctx context.Context, email string, materials []models.TrialMaterial) (*models.Teacher, error)
	ListPublications(ctx context.Context, email string) ([]models.Publication, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	// ListNotificationsByTeacher returns newest first.
	ListNotificationsByTeacher(ctx context.Context, teacherName string) ([]models.Notification, error)
}

type StudentStore interface {
	UpsertStudent(ctx context.Context, s models.Student) (*models.Student, error)
	FindStudent(ctx context.Context, email string) (*models.Student, error)
}

type EnrollmentStore interface {
	CreateEnrollment(ctx context.Context, e *models.Enrollment) error
	FindEnrollmentBySession(ctx context.Context, sessionID string) (*models.Enrollment, error)
	// TransitionEnrollment moves the enrollment from one status to another
	// only when it is currently in from. The flag reports whether this call
	// made the change; the returned enrollment is the stored state either way.
	TransitionEnrollment(ctx context.Context, id, from, to string, at time.Time) (*models.Enrollment, bool, error)
	// ListEnrollmentsByStudent returns newest first.
	ListEnrollmentsByStudent(ctx context.Context, email string) ([]models.Enrollment, error)
}

type Store interface {
	TeacherStore
	NotificationStore
	StudentStore
	EnrollmentStore
	Close(ctx context.Context) error
}
