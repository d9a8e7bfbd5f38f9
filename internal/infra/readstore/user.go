package readstore

import (
	"context"

	"library-lending/internal/usecase/queries"
	"library-lending/internal/usecase/shared"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

// UserReadStore reads the profile mirror kept in sync by the identity provider.
type UserReadStore struct {
	db shared.DBTX
}

func NewUserReadStore(db shared.DBTX) *UserReadStore {
	return &UserReadStore{db: db}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserProfileView, error) {
	ds := pg.From("users").Prepared(true).
		Select("id", "name", "email", "role", "profile_picture").
		Where(goqu.C("id").Eq(id))
	return selectOne[queries.UserProfileView](ctx, r.db, ds, "user")
}
