package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sa-academy/cms-backend/internal/core/domain"
)

const accountCollection = "users"

// AccountRepository stores accounts in a single collection. Every write is a
// single-document operation.
type AccountRepository struct {
	coll *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{coll: db.Collection(accountCollection)}
}

type mongoAccount struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Username         string             `bson:"username"`
	Email            string             `bson:"email"`
	PasswordHash     string             `bson:"password_hash"`
	Role             string             `bson:"role"`
	ResetTokenHash   string             `bson:"reset_token_hash,omitempty"`
	ResetTokenExpiry *time.Time         `bson:"reset_token_expiry,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func toDomain(m *mongoAccount) *domain.Account {
	a := &domain.Account{
		ID:             m.ID.Hex(),
		Username:       m.Username,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           domain.Role(m.Role),
		CreatedAt:      m.CreatedAt.UTC(),
		UpdatedAt:      m.UpdatedAt.UTC(),
		ResetTokenHash: m.ResetTokenHash,
	}
	if m.ResetTokenExpiry != nil {
		exp := m.ResetTokenExpiry.UTC()
		a.ResetTokenExpiry = &exp
	}
	return a
}

// EnsureIndexes creates the unique email and username indexes and the sparse
// reset token index.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "reset_token_hash", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	if err != nil {
		return fmt.Errorf("ensure account indexes: %w", err)
	}
	return nil
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	doc := mongoAccount{
		ID:           primitive.NewObjectID(),
		Username:     account.Username,
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Role:         string(account.Role),
		CreatedAt:    orNow(account.CreatedAt, now),
		UpdatedAt:    orNow(account.UpdatedAt, now),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrAccountExists
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) FindByResetToken(ctx context.Context, tokenHash string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if tokenHash == "" {
		return nil, domain.ErrAccountNotFound
	}
	return r.findOne(ctx, bson.M{"reset_token_hash": tokenHash})
}

func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoAccount
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode accounts: %w", err)
	}

	out := make([]*domain.Account, 0, len(docs))
	for i := range docs {
		out = append(out, toDomain(&docs[i]))
	}
	return out, nil
}

func (r *AccountRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAccountNotFound
	}
	update := bson.M{"$set": bson.M{"role": string(role), "updated_at": time.Now().UTC()}}
	return r.findOneAndUpdate(ctx, bson.M{"_id": oid}, update, domain.ErrAccountNotFound)
}

func (r *AccountRepository) DeleteUnprotected(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{
		"_id":  oid,
		"role": bson.M{"$ne": string(domain.RoleSuperAdmin)},
	})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetResetToken(ctx context.Context, id, tokenHash string, expiry time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"reset_token_hash":   tokenHash,
		"reset_token_expiry": expiry.UTC(),
		"updated_at":         time.Now().UTC(),
	}})
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) ClearResetToken(ctx context.Context, id, tokenHash string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAccountNotFound
	}
	_, err = r.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "reset_token_hash": tokenHash},
		bson.M{"$unset": bson.M{"reset_token_hash": "", "reset_token_expiry": ""}},
	)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

func (r *AccountRepository) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time, passwordHash string) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if tokenHash == "" {
		return nil, domain.ErrResetInvalidOrExpired
	}
	filter := bson.M{
		"reset_token_hash":   tokenHash,
		"reset_token_expiry": bson.M{"$gt": now.UTC()},
	}
	update := bson.M{
		"$set":   bson.M{"password_hash": passwordHash, "updated_at": time.Now().UTC()},
		"$unset": bson.M{"reset_token_hash": "", "reset_token_expiry": ""},
	}
	return r.findOneAndUpdate(ctx, filter, update, domain.ErrResetInvalidOrExpired)
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	var doc mongoAccount
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return toDomain(&doc), nil
}

func (r *AccountRepository) findOneAndUpdate(ctx context.Context, filter, update bson.M, notFound error) (*domain.Account, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc mongoAccount
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return toDomain(&doc), nil
}

func orNow(t, now time.Time) time.Time {
	if t.IsZero() {
		return now
	}
	return t.UTC()
}
