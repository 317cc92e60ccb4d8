package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/events"
	"github.com/anjiri1684/tutor_cards/logger"
	"github.com/anjiri1684/tutor_cards/models"
	"github.com/anjiri1684/tutor_cards/notifications"
)

// NotificationService appends to the per-teacher enrollment ledger. The
// ledger is keyed by the teacher's email; entries are never changed.
type NotificationService struct {
	store     database.NotificationStore
	publisher events.Publisher
	mailer    notifications.Mailer
	now       func() time.Time
}

// NewNotificationService wires the ledger. publisher and mailer may be nil.
func NewNotificationService(store database.NotificationStore, publisher events.Publisher, mailer notifications.Mailer) *NotificationService {
	return &NotificationService{store: store, publisher: publisher, mailer: mailer, now: utcNow}
}

// Record stores a new ledger entry stamped with the current time. The
// teacher key is normalized the way identities are, so the entry shows up
// for the signed-in teacher. Only a store failure is returned; the broker
// event and the teacher email are best effort.
func (s *NotificationService) Record(ctx context.Context, courseName, teacherName, studentID, studentName string) (*models.Notification, error) {
	teacherName = normalizeKey(teacherName)
	n := &models.Notification{
		ID:          uuid.NewString(),
		CourseName:  courseName,
		TeacherName: teacherName,
		StudentID:   studentID,
		StudentName: studentName,
		Timestamp:   s.now(),
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"notification": n.ID,
		"teacher":      teacherName,
		"courseName":   courseName,
	})

	if s.publisher != nil {
		event := events.Event{Type: events.EnrollmentRecorded, OccurredAt: n.Timestamp, Payload: n}
		if err := s.publisher.Publish(ctx, teacherName, event); err != nil {
			log.WithError(err).Warn("Failed to publish enrollment event")
		}
	}

	if s.mailer != nil {
		subject, body := notifications.EnrollmentEmail(studentName, courseName)
		if err := s.mailer.SendEmail(ctx, "", teacherName, subject, body); err != nil {
			log.WithError(err).Warn("Failed to email teacher about enrollment")
		}
	}

	log.Info("Enrollment notification recorded")
	return n, nil
}

// ListForTeacher returns the teacher's ledger, newest first.
func (s *NotificationService) ListForTeacher(ctx context.Context, teacherEmail string) ([]models.Notification, error) {
	return s.store.ListNotificationsByTeacher(ctx, normalizeKey(teacherEmail))
}

// normalizeKey matches middleware.CurrentIdentity: emails are trimmed and
// lower-cased.
func normalizeKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
