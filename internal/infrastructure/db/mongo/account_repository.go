package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/veridian/identity-api/internal/core/domain"
)

const (
	collectionAccounts = "accounts"
	collectionCounters = "counters"
)

// AccountRepository is the MongoDB-backed user directory.
type AccountRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		col:      db.Collection(collectionAccounts),
		counters: db.Collection(collectionCounters),
	}
}

type accountDoc struct {
	ID           int64  `bson:"_id"`
	Name         string `bson:"name,omitempty"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	Role         string `bson:"role"`
	CreatedAt    int64  `bson:"created_at"`
}

func toDoc(acc *domain.Account) accountDoc {
	return accountDoc{
		ID:           acc.ID,
		Name:         acc.Name,
		Email:        acc.Email,
		PasswordHash: acc.PasswordHash,
		Role:         acc.Role.String(),
		CreatedAt:    acc.CreatedAt.Unix(),
	}
}

func fromDoc(doc accountDoc) domain.Account {
	role, _ := domain.ParseRole(doc.Role)
	return domain.Account{
		ID:           doc.ID,
		Name:         doc.Name,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         role,
		CreatedAt:    time.Unix(doc.CreatedAt, 0).UTC(),
	}
}

// EnsureIndexes creates the unique email index. This index, not the
// service-level pre-check, is what ultimately guarantees email uniqueness
// under concurrent writes.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// nextID allocates a monotonically increasing account id from the counters
// collection.
func (r *AccountRepository) nextID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": collectionAccounts},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("allocate account id: %w", err)
	}
	return counter.Seq, nil
}

// Create inserts the account and returns it with its assigned id. A
// duplicate email detected by the unique index comes back as ErrEmailTaken.
func (r *AccountRepository) Create(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}

	doc := toDoc(acc)
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}

	created := fromDoc(doc)
	return &created, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	acc := fromDoc(doc)
	return &acc, nil
}

func (r *AccountRepository) FindByRole(ctx context.Context, role domain.Role) ([]domain.Account, error) {
	return r.findMany(ctx, bson.M{"role": role.String()})
}

func (r *AccountRepository) findMany(ctx context.Context, filter bson.M) ([]domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find accounts: %w", err)
	}
	defer cur.Close(ctx)

	var accounts []domain.Account
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode account: %w", err)
		}
		accounts = append(accounts, fromDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

// Update replaces the stored document. An email change colliding with the
// unique index surfaces as ErrEmailTaken.
func (r *AccountRepository) Update(ctx context.Context, acc *domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": acc.ID}, toDoc(acc))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("update account: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EmailExists reports whether the email is taken by an account other than
// excludeID (0 checks against all accounts).
func (r *AccountRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"email": email}
	if excludeID != 0 {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return n > 0, nil
}
