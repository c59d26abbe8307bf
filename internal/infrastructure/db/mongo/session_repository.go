package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/leadvault/crm-api/internal/core/domain"
	"github.com/leadvault/crm-api/internal/core/ports"
)

const sessionCollection = "login_sessions"

// SessionRepository writes login audit records to MongoDB.
type SessionRepository struct {
	coll *mongo.Collection
}

// NewSessionRepository creates a SessionRepository on the given database.
func NewSessionRepository(db *mongo.Database) ports.SessionRecorder {
	return &SessionRepository{coll: db.Collection(sessionCollection)}
}

type sessionDoc struct {
	ID         string    `bson:"_id"`
	UserID     string    `bson:"user_id"`
	TenantID   string    `bson:"tenant_id"`
	IPAddress  string    `bson:"ip_address,omitempty"`
	UserAgent  string    `bson:"user_agent,omitempty"`
	CreatedAt  time.Time `bson:"created_at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// Record inserts one session document.
func (r *SessionRepository) Record(ctx context.Context, s *domain.Session) error {
	doc := sessionDoc{
		ID:         uuid.NewString(),
		UserID:     s.UserID,
		TenantID:   s.TenantID,
		IPAddress:  s.IPAddress,
		UserAgent:  s.UserAgent,
		CreatedAt:  s.CreatedAt.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	s.ID = doc.ID
	return nil
}

// EnsureIndexes creates the lookup indexes used by audit queries.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(sessionCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("session indexes: %w", err)
	}
	return nil
}
