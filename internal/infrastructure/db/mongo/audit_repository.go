package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/intranet-portal/portal-api/internal/core/domain"
	"github.com/intranet-portal/portal-api/internal/core/ports"
)

const loginAttemptsCollection = "login_attempts"

// AuditRepository stores login attempts in MongoDB.
type AuditRepository struct {
	coll *mongo.Collection
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(loginAttemptsCollection)}
}

type loginAttemptDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Identity  string             `bson:"identity"`
	Outcome   string             `bson:"outcome"`
	UserID    int64              `bson:"user_id,omitempty"`
	RemoteIP  string             `bson:"remote_ip,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty"`
	At        primitive.DateTime `bson:"at"`
}

func newLoginAttemptDoc(a domain.LoginAttempt) loginAttemptDoc {
	return loginAttemptDoc{
		Identity:  a.Identity,
		Outcome:   string(a.Outcome),
		UserID:    a.UserID,
		RemoteIP:  a.RemoteIP,
		UserAgent: a.UserAgent,
		At:        primitive.NewDateTimeFromTime(a.At.UTC()),
	}
}

func (r *AuditRepository) RecordLogin(ctx context.Context, attempt domain.LoginAttempt) error {
	if _, err := r.coll.InsertOne(ctx, newLoginAttemptDoc(attempt)); err != nil {
		return fmt.Errorf("insert login attempt: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup index by identity and a TTL index that
// drops attempts after retention.
func (r *AuditRepository) EnsureIndexes(ctx context.Context, retentionDays int32) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "identity", Value: 1}, {Key: "at", Value: -1}}},
	}
	if retentionDays > 0 {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: "at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(retentionDays * 24 * 60 * 60),
		})
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create login attempt indexes: %w", err)
	}
	return nil
}
