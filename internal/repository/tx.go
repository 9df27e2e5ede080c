package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repos bundles the repository ports bound to one transaction.
type Repos struct {
	Users    UserRepository
	Profiles ProfileRepository
	Media    MediaRepository
	Ratings  RatingRepository
}

// TxRunner executes a closure over transaction-bound repositories. The media
// delete cascade and user registration use it so their multi-table writes are
// all-or-nothing.
type TxRunner interface {
	InTx(ctx context.Context, fn func(r *Repos) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (t *gormTxRunner) InTx(ctx context.Context, fn func(r *Repos) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repos{
			Users:    NewUserRepository(tx),
			Profiles: NewProfileRepository(tx),
			Media:    NewMediaRepository(tx),
			Ratings:  NewRatingRepository(tx),
		})
	})
}
