package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/models"
)

// teacherRecord is the row layout of a teacher document. Both cards are
// flattened into prefixed columns; a nil DraftSavedAt / PublishedAt means
// the card was never written.
type teacherRecord struct {
	ID               uuid.UUID                                `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email            string                                   `gorm:"size:255;not null;uniqueIndex"`
	Username         string                                   `gorm:"size:255;not null;default:''"`
	Experience       string                                   `gorm:"type:text;not null;default:''"`
	Subjects         datatypes.JSONSlice[models.Subject]       `gorm:"type:jsonb"`
	ProfilePhotoPath string                                   `gorm:"type:text;not null;default:''"`
	Draft            models.Card                              `gorm:"embedded;embeddedPrefix:draft_"`
	DraftSavedAt     *time.Time
	Published        models.Card                              `gorm:"embedded;embeddedPrefix:published_"`
	PublishedAt      *time.Time                               `gorm:"index"`
	TrialMaterials   datatypes.JSONSlice[models.TrialMaterial] `gorm:"type:jsonb"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (teacherRecord) TableName() string { return "teachers" }

var cardColumnNames = []string{
	"name", "specialization", "subject", "course_name", "course_length",
	"photo", "card_photo", "email", "phone_number", "location",
}

func cardColumns(prefix string) []string {
	cols := make([]string, 0, len(cardColumnNames))
	for _, c := range cardColumnNames {
		cols = append(cols, prefix+c)
	}
	return cols
}

func (r *teacherRecord) toModel() *models.Teacher {
	t := &models.Teacher{
		Email:            r.Email,
		Username:         r.Username,
		Experience:       r.Experience,
		Subjects:         append([]models.Subject{}, r.Subjects...),
		ProfilePhotoPath: r.ProfilePhotoPath,
		TrialMaterials:   append([]models.TrialMaterial{}, r.TrialMaterials...),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	if r.DraftSavedAt != nil {
		draft := r.Draft
		t.DraftCard = &draft
	}
	if r.PublishedAt != nil {
		published := r.Published
		at := *r.PublishedAt
		t.PublishedCard = &published
		t.PublishedAt = &at
	}
	return t
}

func newTeacherRecord(email string) teacherRecord {
	return teacherRecord{
		Email:          email,
		Subjects:       datatypes.JSONSlice[models.Subject]{},
		TrialMaterials: datatypes.JSONSlice[models.TrialMaterial]{},
	}
}

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// upsertTeacher inserts rec or, when the email exists, overwrites only cols.
func upsertTeacher(tx *gorm.DB, rec *teacherRecord, cols []string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns(append(cols, "updated_at")),
	}).Create(rec).Error
}

func (s *PostgresStore) findRecord(ctx context.Context, email string) (*teacherRecord, error) {
	var rec teacherRecord
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("teacher", email)
		}
		return nil, apperrors.NewStorageError("find teacher", err)
	}
	return &rec, nil
}

func (s *PostgresStore) UpsertTeacherProfile(ctx context.Context, email string, profile models.TeacherProfile) (*models.Teacher, error) {
	rec := newTeacherRecord(email)
	rec.Username = profile.Username
	rec.Experience = profile.Experience
	rec.Subjects = append(datatypes.JSONSlice[models.Subject]{}, profile.Subjects...)
	rec.ProfilePhotoPath = profile.ProfilePhotoPath

	cols := []string{"username", "experience", "subjects", "profile_photo_path"}
	if err := upsertTeacher(s.db.WithContext(ctx), &rec, cols); err != nil {
		return nil, apperrors.NewStorageError("save teacher", err)
	}
	stored, err := s.findRecord(ctx, email)
	if err != nil {
		return nil, err
	}
	return stored.toModel(), nil
}

func (s *PostgresStore) FindTeacher(ctx context.Context, email string) (*models.Teacher, error) {
	rec, err := s.findRecord(ctx, email)
	if err != nil {
		return nil, err
	}
	return rec.toModel(), nil
}

func (s *PostgresStore) UpsertDraftCard(ctx context.Context, email string, card models.Card) (*models.Card, error) {
	now := time.Now().UTC()
	rec := newTeacherRecord(email)
	rec.Draft = card
	rec.DraftSavedAt = &now

	cols := append(cardColumns("draft_"), "draft_saved_at")
	if err := upsertTeacher(s.db.WithContext(ctx), &rec, cols); err != nil {
		return nil, apperrors.NewStorageError("save draft card", err)
	}
	stored, err := s.findRecord(ctx, email)
	if err != nil {
		return nil, err
	}
	return &stored.Draft, nil
}

func (s *PostgresStore) UpsertPublishedCard(ctx context.Context, email string, pub models.Publication) (*models.Card, error) {
	at := pub.PublishedAt
	rec := newTeacherRecord(email)
	rec.Published = pub.Card
	rec.PublishedAt = &at

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cols := append(cardColumns("published_"), "published_at")
		if err := upsertTeacher(tx, &rec, cols); err != nil {
			return err
		}
		return tx.Create(&pub).Error
	})
	if err != nil {
		return nil, apperrors.NewStorageError("publish card", err)
	}
	stored, err := s.findRecord(ctx, email)
	if err != nil {
		return nil, err
	}
	return &stored.Published, nil
}

func (s *PostgresStore) ListPublishedTeachers(ctx context.Context) ([]models.Teacher, error) {
	var recs []teacherRecord
	err := s.db.WithContext(ctx).
		Where("published_at IS NOT NULL").
		Order("created_at asc").
		Find(&recs).Error
	if err != nil {
		return nil, apperrors.NewStorageError("list published cards", err)
	}

	out := make([]models.Teacher, 0, len(recs))
	for i := range recs {
		out = append(out, *recs[i].toModel())
	}
	return out, nil
}

func (s *PostgresStore) FindTeacherByPublishedCourse(ctx context.Context, courseName string) (*models.Teacher, error) {
	var rec teacherRecord
	err := s.db.WithContext(ctx).
		Where("published_at IS NOT NULL AND published_course_name = ?", courseName).
		Order("created_at asc").
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("course", courseName)
		}
		return nil, apperrors.NewStorageError("find course", err)
	}
	return rec.toModel(), nil
}

func (s *PostgresStore) UpsertTrialMaterials(ctx context.Context, email string, materials []models.TrialMaterial) (*models.Teacher, error) {
	rec := newTeacherRecord(email)
	rec.TrialMaterials = append(datatypes.JSONSlice[models.TrialMaterial]{}, materials...)

	if err := upsertTeacher(s.db.WithContext(ctx), &rec, []string{"trial_materials"}); err != nil {
		return nil, apperrors.NewStorageError("save trial materials", err)
	}
	stored, err := s.findRecord(ctx, email)
	if err != nil {
		return nil, err
	}
	return stored.toModel(), nil
}

func (s *PostgresStore) ListPublications(ctx context.Context, email string) ([]models.Publication, error) {
	pubs := []models.Publication{}
	err := s.db.WithContext(ctx).
		Where("teacher_email = ?", email).
		Order("published_at desc").
		Find(&pubs).Error
	if err != nil {
		return nil, apperrors.NewStorageError("list publications", err)
	}
	return pubs, nil
}

func (s *PostgresStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return apperrors.NewStorageError("create notification", err)
	}
	return nil
}

func (s *PostgresStore) ListNotificationsByTeacher(ctx context.Context, teacherName string) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.db.WithContext(ctx).
		Where("teacher_name = ?", teacherName).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "seq"}, Desc: true}).
		Find(&notifications).Error
	if err != nil {
		return nil, apperrors.NewStorageError("list notifications", err)
	}
	return notifications, nil
}

func (s *PostgresStore) UpsertStudent(ctx context.Context, st models.Student) (*models.Student, error) {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"username", "subjects", "updated_at"}),
	}).Create(&st).Error
	if err != nil {
		return nil, apperrors.NewStorageError("save student", err)
	}
	return s.FindStudent(ctx, st.Email)
}

func (s *PostgresStore) FindStudent(ctx context.Context, email string) (*models.Student, error) {
	var st models.Student
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&st).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("student", email)
		}
		return nil, apperrors.NewStorageError("find student", err)
	}
	return &st, nil
}

func (s *PostgresStore) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = errDuplicateSession
		}
		return apperrors.NewStorageError("create enrollment", err)
	}
	return nil
}

func (s *PostgresStore) FindEnrollmentBySession(ctx context.Context, sessionID string) (*models.Enrollment, error) {
	var e models.Enrollment
	if err := s.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("checkout session", sessionID)
		}
		return nil, apperrors.NewStorageError("find enrollment", err)
	}
	return &e, nil
}

func (s *PostgresStore) TransitionEnrollment(ctx context.Context, id, from, to string, at time.Time) (*models.Enrollment, bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{"status": to, "updated_at": at})
	if res.Error != nil {
		return nil, false, apperrors.NewStorageError("update enrollment", res.Error)
	}

	var e models.Enrollment
	if err := s.db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperrors.NewNotFoundError("enrollment", id)
		}
		return nil, false, apperrors.NewStorageError("find enrollment", err)
	}
	return &e, res.RowsAffected == 1, nil
}

func (s *PostgresStore) ListEnrollmentsByStudent(ctx context.Context, email string) ([]models.Enrollment, error) {
	enrollments := []models.Enrollment{}
	err := s.db.WithContext(ctx).
		Where("student_email = ?", email).
		Order("created_at desc").
		Find(&enrollments).Error
	if err != nil {
		return nil, apperrors.NewStorageError("list enrollments", err)
	}
	return enrollments, nil
}
