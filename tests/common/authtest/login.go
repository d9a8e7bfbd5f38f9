//go:build unit || e2e

package authtest

import (
	"testing"

	"library-lending/internal/domain/user"
	"library-lending/internal/pkg/config"
	"library-lending/tests/common/dbtest"

	"github.com/google/uuid"
)

// Session is a mirrored profile together with a bearer token for it.
type Session struct {
	UserID uuid.UUID
	Token  string
}

// CreateAndLogin mirrors a profile and mints its token; sign-in itself happens at the
// identity provider.
func CreateAndLogin(t *testing.T, db dbtest.DBLike, cfg config.JWTConfig, email string, role user.Role) Session {
	t.Helper()
	id := dbtest.CreateTestUser(t, db, email, role.String())
	return Session{UserID: id, Token: NewJWTHelper(cfg).GenerateToken(t, id, role)}
}
