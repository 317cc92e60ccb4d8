package database

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anjiri1684/tutor_cards/apperrors"
	"github.com/anjiri1684/tutor_cards/logger"
	"github.com/anjiri1684/tutor_cards/models"
)

const (
	teacherCollection      = "teachers"
	publicationCollection  = "publications"
	notificationCollection = "notifications"
	studentCollection      = "students"
	enrollmentCollection   = "enrollments"
)

// MongoStore keeps one document per teacher, matching the shape the SPA
// has always consumed (profileCardDetails, publishedCard, trialMaterials).
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func ConnectMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to MongoDB")
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping MongoDB")
	}

	s := &MongoStore{client: client, db: client.Database(dbName)}
	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	logger.Log.WithField("database", dbName).Info("✅ Connected to MongoDB")
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		teacherCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "publishedCard.courseName", Value: 1}}},
		},
		publicationCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "teacherEmail", Value: 1}, {Key: "publishedAt", Value: -1}}},
		},
		notificationCollection: {{Keys: bson.D{{Key: "teacherName", Value: 1}, {Key: "timestamp", Value: -1}}}},
		studentCollection:      {{Keys: bson.D{{Key: "email", Value: 1}}, Options: unique}},
		enrollmentCollection: {
			{Keys: bson.D{{Key: "sessionId", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "studentEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
	for coll, idx := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return errors.Wrapf(err, "failed to create indexes on %s", coll)
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// upsertTeacher applies set to the teacher document, creating it when
// absent, and returns the document after the update.
func (s *MongoStore) upsertTeacher(ctx context.Context, email string, set bson.M) (*models.Teacher, error) {
	now := time.Now().UTC()
	set["updatedAt"] = now

	setOnInsert := bson.M{"createdAt": now}
	if _, ok := set["subjects"]; !ok {
		setOnInsert["subjects"] = []models.Subject{}
	}
	if _, ok := set["trialMaterials"]; !ok {
		setOnInsert["trialMaterials"] = []models.TrialMaterial{}
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	res := s.db.Collection(teacherCollection).FindOneAndUpdate(ctx,
		bson.M{"email": email},
		bson.M{"$set": set, "$setOnInsert": setOnInsert},
		opts,
	)

	var t models.Teacher
	if err := res.Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MongoStore) UpsertTeacherProfile(ctx context.Context, email string, profile models.TeacherProfile) (*models.Teacher, error) {
	subjects := profile.Subjects
	if subjects == nil {
		subjects = []models.Subject{}
	}
	t, err := s.upsertTeacher(ctx, email, bson.M{
		"username":         profile.Username,
		"experience":       profile.Experience,
		"subjects":         subjects,
		"profilePhotoPath": profile.ProfilePhotoPath,
	})
	if err != nil {
		return nil, apperrors.NewStorageError("save teacher", err)
	}
	return t, nil
}

func (s *MongoStore) FindTeacher(ctx context.Context, email string) (*models.Teacher, error) {
	var t models.Teacher
	err := s.db.Collection(teacherCollection).FindOne(ctx, bson.M{"email": email}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("teacher", email)
		}
		return nil, apperrors.NewStorageError("find teacher", err)
	}
	return &t, nil
}

func (s *MongoStore) UpsertDraftCard(ctx context.Context, email string, card models.Card) (*models.Card, error) {
	t, err := s.upsertTeacher(ctx, email, bson.M{"profileCardDetails": card})
	if err != nil {
		return nil, apperrors.NewStorageError("save draft card", err)
	}
	return t.DraftCard, nil
}

// UpsertPublishedCard writes the published slot and the history entry in
// one transaction, so a failed history insert leaves the previous card
// published. Transactions need a replica set or sharded cluster.
func (s *MongoStore) UpsertPublishedCard(ctx context.Context, email string, pub models.Publication) (*models.Card, error) {
	var published *models.Card
	err := s.client.UseSession(ctx, func(sc mongo.SessionContext) error {
		_, err := sc.WithTransaction(sc, func(tc mongo.SessionContext) (interface{}, error) {
			t, err := s.upsertTeacher(tc, email, bson.M{
				"publishedCard": pub.Card,
				"publishedAt":   pub.PublishedAt,
			})
			if err != nil {
				return nil, err
			}
			if _, err := s.db.Collection(publicationCollection).InsertOne(tc, pub); err != nil {
				return nil, errors.Wrap(err, "record publication")
			}
			published = t.PublishedCard
			return nil, nil
		})
		return err
	})
	if err != nil {
		return nil, apperrors.NewStorageError("publish card", err)
	}
	return published, nil
}

func (s *MongoStore) ListPublishedTeachers(ctx context.Context) ([]models.Teacher, error) {
	filter := bson.M{"publishedCard": bson.M{"$exists": true, "$ne": nil}}
	cursor, err := s.db.Collection(teacherCollection).Find(ctx, filter)
	if err != nil {
		return nil, apperrors.NewStorageError("list published cards", err)
	}

	teachers := []models.Teacher{}
	if err := cursor.All(ctx, &teachers); err != nil {
		return nil, apperrors.NewStorageError("list published cards", err)
	}
	return teachers, nil
}

func (s *MongoStore) FindTeacherByPublishedCourse(ctx context.Context, courseName string) (*models.Teacher, error) {
	var t models.Teacher
	err := s.db.Collection(teacherCollection).
		FindOne(ctx, bson.M{"publishedCard.courseName": courseName}).
		Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("course", courseName)
		}
		return nil, apperrors.NewStorageError("find course", err)
	}
	return &t, nil
}

func (s *MongoStore) UpsertTrialMaterials(ctx context.Context, email string, materials []models.TrialMaterial) (*models.Teacher, error) {
	if materials == nil {
		materials = []models.TrialMaterial{}
	}
	t, err := s.upsertTeacher(ctx, email, bson.M{"trialMaterials": materials})
	if err != nil {
		return nil, apperrors.NewStorageError("save trial materials", err)
	}
	return t, nil
}

func (s *MongoStore) ListPublications(ctx context.Context, email string) ([]models.Publication, error) {
	opts := options.Find().SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.db.Collection(publicationCollection).Find(ctx, bson.M{"teacherEmail": email}, opts)
	if err != nil {
		return nil, apperrors.NewStorageError("list publications", err)
	}

	pubs := []models.Publication{}
	if err := cursor.All(ctx, &pubs); err != nil {
		return nil, apperrors.NewStorageError("list publications", err)
	}
	return pubs, nil
}

func (s *MongoStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if _, err := s.db.Collection(notificationCollection).InsertOne(ctx, n); err != nil {
		return apperrors.NewStorageError("create notification", err)
	}
	return nil
}

func (s *MongoStore) ListNotificationsByTeacher(ctx context.Context, teacherName string) ([]models.Notification, error) {
	// _id is an ObjectID, so it breaks timestamp ties in insertion order.
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.db.Collection(notificationCollection).Find(ctx, bson.M{"teacherName": teacherName}, opts)
	if err != nil {
		return nil, apperrors.NewStorageError("list notifications", err)
	}

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		return nil, apperrors.NewStorageError("list notifications", err)
	}
	return notifications, nil
}

func (s *MongoStore) UpsertStudent(ctx context.Context, st models.Student) (*models.Student, error) {
	now := time.Now().UTC()
	subjects := st.Subjects
	if subjects == nil {
		subjects = []string{}
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var out models.Student
	err := s.db.Collection(studentCollection).FindOneAndUpdate(ctx,
		bson.M{"email": st.Email},
		bson.M{
			"$set":         bson.M{"username": st.Username, "subjects": subjects, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		opts,
	).Decode(&out)
	if err != nil {
		return nil, apperrors.NewStorageError("save student", err)
	}
	return &out, nil
}

func (s *MongoStore) FindStudent(ctx context.Context, email string) (*models.Student, error) {
	var st models.Student
	err := s.db.Collection(studentCollection).FindOne(ctx, bson.M{"email": email}).Decode(&st)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("student", email)
		}
		return nil, apperrors.NewStorageError("find student", err)
	}
	return &st, nil
}

func (s *MongoStore) CreateEnrollment(ctx context.Context, e *models.Enrollment) error {
	if _, err := s.db.Collection(enrollmentCollection).InsertOne(ctx, e); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.NewStorageError("create enrollment", errDuplicateSession)
		}
		return apperrors.NewStorageError("create enrollment", err)
	}
	return nil
}

func (s *MongoStore) FindEnrollmentBySession(ctx context.Context, sessionID string) (*models.Enrollment, error) {
	var e models.Enrollment
	err := s.db.Collection(enrollmentCollection).FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFoundError("checkout session", sessionID)
		}
		return nil, apperrors.NewStorageError("find enrollment", err)
	}
	return &e, nil
}

func (s *MongoStore) TransitionEnrollment(ctx context.Context, id, from, to string, at time.Time) (*models.Enrollment, bool, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var e models.Enrollment
	err := s.db.Collection(enrollmentCollection).FindOneAndUpdate(ctx,
		bson.M{"id": id, "status": from},
		bson.M{"$set": bson.M{"status": to, "updatedAt": at}},
		opts,
	).Decode(&e)
	if err == nil {
		return &e, true, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, apperrors.NewStorageError("update enrollment", err)
	}

	// Not in the from state: either someone else moved it or it is unknown.
	err = s.db.Collection(enrollmentCollection).FindOne(ctx, bson.M{"id": id}).Decode(&e)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, apperrors.NewNotFoundError("enrollment", id)
		}
		return nil, false, apperrors.NewStorageError("find enrollment", err)
	}
	return &e, false, nil
}

func (s *MongoStore) ListEnrollmentsByStudent(ctx context.Context, email string) ([]models.Enrollment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := s.db.Collection(enrollmentCollection).Find(ctx, bson.M{"studentEmail": email}, opts)
	if err != nil {
		return nil, apperrors.NewStorageError("list enrollments", err)
	}

	enrollments := []models.Enrollment{}
	if err := cursor.All(ctx, &enrollments); err != nil {
		return nil, apperrors.NewStorageError("list enrollments", err)
	}
	return enrollments, nil
}
