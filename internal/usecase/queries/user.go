package queries

import (
	"context"

	"library-lending/internal/domain/user"
	"library-lending/internal/infra"

	"github.com/google/uuid"
)

//go:generate mockgen -source=user.go -destination=../../../tests/mock/queries/user.go -package=queriesmock

type UserReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*UserProfileView, error)
}

type UserQueries interface {
	GetCurrentUser(ctx context.Context, actor user.Actor) (*UserProfileView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

// GetCurrentUser enriches the verified identity with the mirrored profile. A user the
// identity provider knows but the mirror does not is still returned with id and role.
func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, actor user.Actor) (*UserProfileView, error) {
	profile, err := q.readStore.FindByID(ctx, actor.ID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &UserProfileView{ID: actor.ID, Role: actor.Role.String()}, nil
		}
		return nil, infra.Translate(err, nil)
	}
	// the token's role wins over the mirrored one
	profile.Role = actor.Role.String()
	return profile, nil
}
