package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/exportracker/quotation-backend/pkg/db/models"
	pkgerrors "github.com/exportracker/quotation-backend/pkg/errors"
	"github.com/exportracker/quotation-backend/pkg/logger"
)

type profilesRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.Profile, error)
}

type identityCache interface {
	CachedUserID(ctx context.Context, email string) (string, bool, error)
	CacheUserID(ctx context.Context, email, userID string, ttl time.Duration) error
}

// Service resolves caller emails to user ids.
type Service interface {
	LookupUserID(ctx context.Context, email string) (uuid.UUID, error)
}

type service struct {
	repo     profilesRepository
	cache    identityCache
	cacheTTL time.Duration
	logg     *logger.Logger
}

// NewService builds the identity lookup. cache may be nil, in which case every
// lookup reads the profiles table.
func NewService(repo profilesRepository, cache identityCache, cacheTTL time.Duration, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("profiles repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, cache: cache, cacheTTL: cacheTTL, logg: logg}, nil
}

func (s *service) LookupUserID(ctx context.Context, email string) (uuid.UUID, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "email is required")
	}

	if s.cache != nil {
		cached, ok, err := s.cache.CachedUserID(ctx, normalized)
		if err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "identity cache read failed")
		} else if ok {
			if id, parseErr := uuid.Parse(cached); parseErr == nil {
				return id, nil
			}
		}
	}

	profile, err := s.repo.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("no user found for email %s", normalized)).
				WithDetails(map[string]any{"email": normalized})
		}
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
	}

	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.CacheUserID(ctx, normalized, profile.ID.String(), s.cacheTTL); err != nil {
			s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "identity cache write failed")
		}
	}
	return profile.ID, nil
}
