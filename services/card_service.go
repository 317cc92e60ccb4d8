package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/logger"
	"github.com/anjiri1684/tutor_cards/models"
)

// CardFilter narrows ListPublished. Zero values match everything.
type CardFilter struct {
	Subject string
	Q       string
}

// CardService keeps a teacher's draft card and published card apart and
// serves the public listing.
type CardService struct {
	store database.TeacherStore
	now   func() time.Time
}

func NewCardService(store database.TeacherStore) *CardService {
	return &CardService{store: store, now: utcNow}
}

func utcNow() time.Time { return time.Now().UTC() }

// SaveDraft replaces the teacher's draft with card. Fields left out of card
// are cleared.
func (s *CardService) SaveDraft(ctx context.Context, teacherEmail string, card models.Card) (models.Card, error) {
	saved, err := s.store.UpsertDraftCard(ctx, teacherEmail, card.Trimmed())
	if err != nil {
		return models.Card{}, err
	}
	return *saved, nil
}

// GetDraft returns the empty card when the teacher has no draft yet.
func (s *CardService) GetDraft(ctx context.Context, teacherEmail string) (models.Card, error) {
	t, err := s.store.FindTeacher(ctx, teacherEmail)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return models.Card{}, nil
		}
		return models.Card{}, err
	}
	if t.DraftCard == nil {
		return models.Card{}, nil
	}
	return *t.DraftCard, nil
}

// Publish validates card and, when every required field is set, makes it
// the teacher's published card and appends it to the publish history. The
// draft is not touched. A rejected card leaves the store unchanged.
func (s *CardService) Publish(ctx context.Context, teacherEmail string, card models.Card) (models.Card, error) {
	card = card.Trimmed()
	if err := validateStruct(card); err != nil {
		return models.Card{}, err
	}

	pub := models.Publication{
		ID:           uuid.NewString(),
		TeacherEmail: teacherEmail,
		Card:         card,
		PublishedAt:  s.now(),
	}
	published, err := s.store.UpsertPublishedCard(ctx, teacherEmail, pub)
	if err != nil {
		return models.Card{}, err
	}

	logger.Log.WithFields(logrus.Fields{
		"teacher":    teacherEmail,
		"courseName": card.CourseName,
	}).Info("Card published")
	return *published, nil
}

// ListPublished returns the published card of every teacher that has one,
// in store order. Relative photo references are resolved against origin.
func (s *CardService) ListPublished(ctx context.Context, origin string, filter CardFilter) ([]models.PublishedCard, error) {
	teachers, err := s.store.ListPublishedTeachers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.PublishedCard, 0, len(teachers))
	for _, t := range teachers {
		if t.PublishedCard == nil || !filter.matches(*t.PublishedCard) {
			continue
		}
		card := *t.PublishedCard
		card.Photo = ResolveMediaURL(origin, card.Photo)
		card.CardPhoto = ResolveMediaURL(origin, card.CardPhoto)
		out = append(out, models.PublishedCard{Card: card, TeacherEmail: t.Email})
	}
	return out, nil
}

// ListPublications returns the teacher's publish history, newest first.
func (s *CardService) ListPublications(ctx context.Context, teacherEmail string) ([]models.Publication, error) {
	return s.store.ListPublications(ctx, teacherEmail)
}

func (f CardFilter) matches(c models.Card) bool {
	if subject := strings.TrimSpace(f.Subject); subject != "" && !strings.EqualFold(subject, c.Subject) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Q))
	if q == "" {
		return true
	}
	for _, field := range []string{c.Name, c.Specialization, c.CourseName, c.Subject} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
