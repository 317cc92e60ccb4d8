package services

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjiri1684/tutor_cards/database"
	"github.com/anjiri1684/tutor_cards/events"
)

func TestRecordThenListNewestFirst(t *testing.T) {
	svc := NewNotificationService(database.NewMemoryStore(), nil, nil)

	_, err := svc.Record(ctx, "C1", "t@x.com", "s1", "Stu")
	require.NoError(t, err)
	_, err = svc.Record(ctx, "C1", "t@x.com", "s2", "Stu2")
	require.NoError(t, err)

	list, err := svc.ListForTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "s2", list[0].StudentID)
	assert.Equal(t, "s1", list[1].StudentID)
}

func TestListBreaksTimestampTiesByInsertOrder(t *testing.T) {
	svc := NewNotificationService(database.NewMemoryStore(), nil, nil)
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return at }

	for i := 1; i <= 3; i++ {
		_, err := svc.Record(ctx, "C1", "t@x.com", fmt.Sprintf("s%d", i), "Stu")
		require.NoError(t, err)
	}

	list, err := svc.ListForTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"s3", "s2", "s1"},
		[]string{list[0].StudentID, list[1].StudentID, list[2].StudentID})
}

func TestListIsNonIncreasingUnderConcurrentRecords(t *testing.T) {
	svc := NewNotificationService(database.NewMemoryStore(), nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Record(ctx, "C1", "t@x.com", fmt.Sprintf("s%d", i), "Stu")
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := svc.ListForTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	require.Len(t, list, 50)
	for i := 1; i < len(list); i++ {
		assert.False(t, list[i].Timestamp.After(list[i-1].Timestamp), "entry %d is newer than entry %d", i, i-1)
	}
}

func TestListForUnknownTeacherIsEmpty(t *testing.T) {
	svc := NewNotificationService(database.NewMemoryStore(), nil, nil)

	list, err := svc.ListForTeacher(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestListIsScopedToTeacher(t *testing.T) {
	svc := NewNotificationService(database.NewMemoryStore(), nil, nil)

	_, err := svc.Record(ctx, "C1", "a@x.com", "s1", "Stu")
	require.NoError(t, err)
	_, err = svc.Record(ctx, "C2", "b@x.com", "s2", "Stu2")
	require.NoError(t, err)

	list, err := svc.ListForTeacher(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "C1", list[0].CourseName)
}

func TestRecordPublishesEventAndEmailsTeacher(t *testing.T) {
	publisher := &fakePublisher{}
	mailer := &fakeMailer{}
	svc := NewNotificationService(database.NewMemoryStore(), publisher, mailer)

	n, err := svc.Record(ctx, "C1", "t@x.com", "s1", "Stu")
	require.NoError(t, err)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "t@x.com", publisher.keys[0])
	assert.Equal(t, events.EnrollmentRecorded, publisher.events[0].Type)
	assert.Equal(t, n.Timestamp, publisher.events[0].OccurredAt)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "t@x.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].body, "C1")
}

func TestRecordIgnoresSideEffectFailures(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker down")}
	mailer := &fakeMailer{err: errors.New("smtp down")}
	svc := NewNotificationService(database.NewMemoryStore(), publisher, mailer)

	_, err := svc.Record(ctx, "C1", "t@x.com", "s1", "Stu")
	require.NoError(t, err)

	list, err := svc.ListForTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRecordNormalizesTeacherKey(t *testing.T) {
	svc := NewNotificationService(database.NewMemoryStore(), nil, nil)

	n, err := svc.Record(ctx, "C1", " T@X.com ", "s1", "Stu")
	require.NoError(t, err)
	assert.Equal(t, "t@x.com", n.TeacherName)

	list, err := svc.ListForTeacher(ctx, "t@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
