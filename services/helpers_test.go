package services

import (
	"context"
	"sync"
	"time"

	"github.com/anjiri1684/tutor_cards/events"
	"github.com/anjiri1684/tutor_cards/models"
)

var ctx = context.Background()

func fullCard() models.Card {
	return models.Card{
		Name:           "A",
		Specialization: "Algebra",
		Subject:        "Math",
		CourseName:     "C1",
		CourseLength:   "4 weeks",
		Photo:          "/uploads/profile-photos/a.png",
		CardPhoto:      "https://cdn.example.com/card.png",
	}
}

// fixedClock returns a clock that advances by step on every call.
func fixedClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t := next
		next = next.Add(step)
		return t
	}
}

type recordedMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []recordedMail
	err  error
}

func (m *fakeMailer) SendEmail(_ context.Context, _, toEmail, subject, html string) error {
	m.sent = append(m.sent, recordedMail{to: toEmail, subject: subject, body: html})
	return m.err
}

type fakePublisher struct {
	keys   []string
	events []events.Event
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, event events.Event) error {
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return p.err
}
