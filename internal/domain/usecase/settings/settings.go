package settings

import (
	"context"
	"sync"
	"time"

	"github.com/turaincash/mobcash-wallet/internal/domain/entity"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/core"
	"github.com/turaincash/mobcash-wallet/internal/domain/port/gateway"
)

// DefaultTTL is how long fetched settings are served before the next fetch
const DefaultTTL = 5 * core.Minute

// Service caches the remote wallet settings.
// A failed refresh serves the previous value when there is one.
type Service struct {
	gateway gateway.MobcashGateway
	clock   core.TimeProvider
	ttl     core.Duration
	logger  core.Logger

	mu        sync.Mutex
	cached    *entity.Settings
	fetchedAt time.Time
}

// NewService creates a settings cache; a non-positive ttl uses DefaultTTL
func NewService(gw gateway.MobcashGateway, clock core.TimeProvider, ttl core.Duration, logger core.Logger) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		gateway: gw,
		clock:   clock,
		ttl:     ttl,
		logger:  logger,
	}
}

// Settings returns the cached settings, fetching them when missing or expired
func (s *Service) Settings(ctx context.Context) (*entity.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && s.clock.Since(s.fetchedAt) < s.ttl {
		out := *s.cached
		return &out, nil
	}

	fresh, err := s.gateway.GetSettings(ctx)
	if err != nil {
		if s.cached != nil {
			s.logger.Warn("Serving stale settings", map[string]any{
				"age":   s.clock.Since(s.fetchedAt).Std().String(),
				"error": err.Error(),
			})
			out := *s.cached
			return &out, nil
		}
		return nil, err
	}
	if fresh == nil {
		fresh = &entity.Settings{}
	}

	s.cached = fresh
	s.fetchedAt = s.clock.Now()
	s.logger.Debug("Settings refreshed", map[string]any{
		"referral_bonus": fresh.ReferralBonus,
		"moov_merchant":  fresh.MerchantPhone() != "",
	})

	out := *fresh
	return &out, nil
}

// MerchantPhone returns the Moov merchant number, "" when unset
func (s *Service) MerchantPhone(ctx context.Context) (string, error) {
	st, err := s.Settings(ctx)
	if err != nil {
		return "", err
	}
	return st.MerchantPhone(), nil
}

// ReferralBonusEnabled reports whether bonuses and coupons are shown
func (s *Service) ReferralBonusEnabled(ctx context.Context) (bool, error) {
	st, err := s.Settings(ctx)
	if err != nil {
		return false, err
	}
	return st.ReferralBonus, nil
}

// Invalidate drops the cached value
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}
