package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/logger"
	"github.com/anjiri1684/tutor_cards/models"
	"github.com/anjiri1684/tutor_cards/payments"
)

// Student is the identity of the caller enrolling.
type Student struct {
	Email    string
	Username string
}

// Price is what a course checkout charges.
type Price struct {
	Amount   float64
	Currency string
}

var ErrPaymentNotCompleted = errors.New("payment not completed")

// EnrollmentService runs checkout: a pending enrollment is created against a
// payment session and completed once the provider reports it paid, at which
// point the teacher's ledger gets an entry.
type EnrollmentService struct {
	teachers      database.TeacherStore
	enrollments   database.EnrollmentStore
	provider      payments.Provider
	notifications *NotificationService
	price         Price
	now           func() time.Time
}

func NewEnrollmentService(teachers database.TeacherStore, enrollments database.EnrollmentStore, provider payments.Provider, notifications *NotificationService, price Price) *EnrollmentService {
	return &EnrollmentService{
		teachers:      teachers,
		enrollments:   enrollments,
		provider:      provider,
		notifications: notifications,
		price:         price,
		now:           utcNow,
	}
}

func (s *EnrollmentService) Checkout(ctx context.Context, student Student, courseName string) (*models.Enrollment, error) {
	if courseName == "" {
		return nil, apperrors.NewValidationError([]string{"courseName"})
	}
	teacher, err := s.teachers.FindTeacherByPublishedCourse(ctx, courseName)
	if err != nil {
		return nil, err
	}

	sessionID, err := s.provider.CreateSession(ctx, payments.CheckoutRequest{
		CourseName:   courseName,
		StudentEmail: student.Email,
		Amount:       s.price.Amount,
		Currency:     s.price.Currency,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "%s: create checkout session", s.provider.Name())
	}

	now := s.now()
	e := &models.Enrollment{
		ID:           uuid.NewString(),
		SessionID:    sessionID,
		StudentEmail: student.Email,
		StudentName:  student.Username,
		CourseName:   courseName,
		TeacherEmail: teacher.Email,
		Status:       models.EnrollmentPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.enrollments.CreateEnrollment(ctx, e); err != nil {
		return nil, err
	}

	logger.Log.WithFields(logrus.Fields{
		"session":    sessionID,
		"student":    student.Email,
		"courseName": courseName,
	}).Info("Checkout session created")
	return e, nil
}

// Confirm completes the caller's enrollment for sessionID once the provider
// reports it paid. Only the call that moves the enrollment to complete
// writes the ledger entry; concurrent or repeated confirmations return the
// complete enrollment unchanged. If the ledger write fails the enrollment
// goes back to pending so the confirmation can be retried.
func (s *EnrollmentService) Confirm(ctx context.Context, student Student, sessionID string) (*models.Enrollment, error) {
	e, err := s.enrollments.FindEnrollmentBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if e.StudentEmail != student.Email {
		return nil, apperrors.NewNotFoundError("checkout session", sessionID)
	}
	if e.Status == models.EnrollmentComplete {
		return e, nil
	}

	paid, err := s.provider.ConfirmSession(ctx, sessionID)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: confirm checkout session", s.provider.Name())
	}
	if !paid {
		return nil, ErrPaymentNotCompleted
	}

	done, moved, err := s.enrollments.TransitionEnrollment(ctx, e.ID, models.EnrollmentPending, models.EnrollmentComplete, s.now())
	if err != nil {
		return nil, err
	}
	if !moved {
		return done, nil
	}

	if _, err := s.notifications.Record(ctx, done.CourseName, done.TeacherEmail, done.StudentEmail, done.StudentName); err != nil {
		if _, _, rerr := s.enrollments.TransitionEnrollment(ctx, done.ID, models.EnrollmentComplete, models.EnrollmentPending, s.now()); rerr != nil {
			logger.Log.WithFields(logrus.Fields{
				"enrollment": done.ID,
				"session":    sessionID,
			}).WithError(rerr).Error("Failed to reopen enrollment after ledger write failed")
		}
		return nil, err
	}
	return done, nil
}

func (s *EnrollmentService) ListForStudent(ctx context.Context, email string) ([]models.Enrollment, error) {
	return s.enrollments.ListEnrollmentsByStudent(ctx, email)
}
