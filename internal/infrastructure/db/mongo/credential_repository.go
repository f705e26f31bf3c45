package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkwell/blog-system/internal/core/domain"
)

const collectionAccounts = "accounts"

// CredentialRepository verifies logins against bcrypt hashes stored in
// MongoDB. It satisfies ports.CredentialVerifier.
type CredentialRepository struct {
	conn *Conn
	col  *mongo.Collection
}

type mongoAccount struct {
	ID           string `bson:"_id"`
	Username     string `bson:"username"`
	Email        string `bson:"email"`
	PasswordHash string `bson:"password_hash"`
	CreatedAt    int64  `bson:"created_at"`
}

// Verify returns the user whose email and password match.
func (r *CredentialRepository) Verify(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	ctx, cancel := r.conn.withTimeout(ctx)
	defer cancel()

	var ma mongoAccount
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(ma.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.User{ID: ma.ID, Username: ma.Username, Email: ma.Email}, nil
}

// Ping checks the deployment holding the accounts.
func (r *CredentialRepository) Ping(ctx context.Context) error {
	return r.conn.Ping(ctx)
}

// EnsureAccounts inserts the given accounts when their email is not yet
// known, hashing the passwords with bcrypt. Existing accounts are untouched.
func (r *CredentialRepository) EnsureAccounts(ctx context.Context, accounts []domain.Account) error {
	ctx, cancel := context.WithTimeout(ctx, 3*r.conn.timeout)
	defer cancel()

	if _, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("ensure account index: %w", err)
	}

	for _, a := range accounts {
		hash, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		doc := mongoAccount{
			ID:           a.ID,
			Username:     a.Username,
			Email:        a.Email,
			PasswordHash: string(hash),
			CreatedAt:    time.Now().UTC().Unix(),
		}
		_, err = r.col.UpdateOne(ctx,
			bson.M{"email": a.Email},
			bson.M{"$setOnInsert": doc},
			options.Update().SetUpsert(true),
		)
		if err != nil && !mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("ensure account %s: %w", a.Email, err)
		}
	}
	return nil
}
