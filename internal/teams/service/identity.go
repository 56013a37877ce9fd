package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/huddlehq/huddle/internal/teams/domain"
	"github.com/huddlehq/huddle/internal/teams/store"
	"github.com/huddlehq/huddle/pkg/slogx"
)

var ErrUnknownIdentity = errors.New("bearer subject does not resolve to a user")

// IdentityService resolves the validated bearer subject to a stored user
// record. Every authenticated request goes through Resolve before any
// authorization check; an unknown subject fails closed.
type IdentityService struct {
	Store store.Store
}

// Resolve returns the user for the given subject (user id).
func (s *IdentityService) Resolve(ctx context.Context, subject string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("bearer token for unknown user", slog.String("subject", subject))
			return domain.User{}, ErrUnknownIdentity
		}
		log.Error("failed to resolve user", slog.Any("error", err))
		return domain.User{}, err
	}

	return user, nil
}
