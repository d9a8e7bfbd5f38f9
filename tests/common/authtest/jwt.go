//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"library-lending/internal/domain/user"
	"library-lending/internal/pkg/config"
	"library-lending/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the identity provider would for the configured secret.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, h.cfg.Duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, h.cfg.Issuer, time.Millisecond).GenerateToken(userID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
