package jwt

import (
	"errors"
	"time"

	"library-lending/internal/domain/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// tolerated drift between the identity provider's clock and ours
const clockSkew = 30 * time.Second

// Claims is the identity provider's token payload. Only the user id and role are read;
// older tokens carry the id in sub alone.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secretKey     []byte
	issuer        string
	tokenDuration time.Duration
	now           func() time.Time
}

func NewService(secretKey, issuer string, tokenDuration time.Duration) *Service {
	return &Service{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		tokenDuration: tokenDuration,
		now:           time.Now,
	}
}

// GenerateToken mints a token the way the identity provider does. Used by the
// development CLI and tests.
func (s *Service) GenerateToken(userID uuid.UUID, role user.Role) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithLeeway(clockSkew),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, opts...)

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if err := claims.resolveUserID(); err != nil {
		return nil, err
	}

	return claims, nil
}

// resolveUserID fills UserID from sub when absent and rejects tokens where both are
// present but disagree.
func (c *Claims) resolveUserID() error {
	var sub uuid.UUID
	if c.Subject != "" {
		parsed, err := uuid.Parse(c.Subject)
		if err != nil {
			return ErrInvalidToken
		}
		sub = parsed
	}

	switch {
	case c.UserID == uuid.Nil && sub == uuid.Nil:
		return ErrInvalidToken
	case c.UserID == uuid.Nil:
		c.UserID = sub
	case sub != uuid.Nil && sub != c.UserID:
		return ErrInvalidToken
	}
	return nil
}
