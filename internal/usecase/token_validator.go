package usecase

import (
	"library-lending/internal/domain/user"
	"library-lending/internal/pkg/errs"
	"library-lending/internal/pkg/jwt"
)

// TokenValidator turns a bearer token into the request's Actor.
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Actor, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Actor, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Actor{}, errs.Mark(err, errs.ErrUnauthenticated)
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Actor{}, errs.Mark(errs.Wrap(err, "token carries an unknown role"), errs.ErrUnauthenticated)
	}

	return user.NewActor(claims.UserID, role), nil
}
