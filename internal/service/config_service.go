package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/internal/repository"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ConfigChangedChannel is published whenever the admin configuration is
// updated so other sessions re-read it.
const ConfigChangedChannel = "admin_config_changed"

type ConfigService interface {
	Get(ctx context.Context) (*model.AdminConfig, error)
	Update(ctx context.Context, input dto.UpdateConfigInput, updatedBy string) (*model.AdminConfig, error)
	// Watch invalidates the local cache whenever another session updates
	// the configuration. Blocks until ctx is done.
	Watch(ctx context.Context)
}

type configService struct {
	repo        repository.ConfigRepository
	redisClient *redis.Client

	mu     sync.RWMutex
	cached *model.AdminConfig
}

func NewConfigService(repo repository.ConfigRepository, redisClient *redis.Client) ConfigService {
	return &configService{
		repo:        repo,
		redisClient: redisClient,
	}
}

// Get returns the cached configuration, reading it through once. A missing
// row falls back to the defaults rather than failing.
func (s *configService) Get(ctx context.Context) (*model.AdminConfig, error) {
	s.mu.RLock()
	if s.cached != nil {
		cfg := *s.cached
		s.mu.RUnlock()
		return &cfg, nil
	}
	s.mu.RUnlock()

	cfg, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			def := model.DefaultAdminConfig()
			return &def, nil
		}
		return nil, fmt.Errorf("failed to load admin config: %w", err)
	}

	s.mu.Lock()
	s.cached = cfg
	s.mu.Unlock()

	out := *cfg
	return &out, nil
}

func (s *configService) Update(ctx context.Context, input dto.UpdateConfigInput, updatedBy string) (*model.AdminConfig, error) {
	if errs := ValidateConfigInput(input); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", apperror.ErrInvalidInput, strings.Join(errs, "; "))
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	next := *current
	applyConfigInput(&next, input)

	updated, err := s.repo.UpdateVersioned(ctx, &next, input.Version, updatedBy)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = updated
	s.mu.Unlock()

	if s.redisClient != nil {
		if err := s.redisClient.Publish(ctx, ConfigChangedChannel, updated.Version).Err(); err != nil {
			log.Printf("failed to publish config change: %v", err)
		}
	}

	out := *updated
	return &out, nil
}

func (s *configService) Watch(ctx context.Context) {
	if s.redisClient == nil {
		return
	}

	pubsub := s.redisClient.Subscribe(ctx, ConfigChangedChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			s.mu.Lock()
			s.cached = nil
			s.mu.Unlock()
		}
	}
}

// ValidateConfigInput rejects negative values and malformed thresholds. It
// deliberately does not require normal <= warning <= urgent; that ordering is
// an admin convention the classifier tolerates either way.
func ValidateConfigInput(input dto.UpdateConfigInput) []string {
	var errs []string

	checkNonNegative := func(name string, v *int) {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Sprintf("%s must not be negative", name))
		}
	}

	checkNonNegative("post_visibility_duration", input.PostVisibilityDuration)
	checkNonNegative("daily_free_post_limit", input.DailyFreePostLimit)
	checkNonNegative("ban_threshold", input.BanThreshold)
	checkNonNegative("ban_duration_days", input.BanDurationDays)
	checkNonNegative("daily_free_coin", input.DailyFreeCoin)
	checkNonNegative("max_active_announcements", input.MaxActiveAnnouncements)
	checkNonNegative("urgent_announcement_threshold", input.UrgentAnnouncementThreshold)

	if input.EmojiPinPrice != nil && *input.EmojiPinPrice < 0 {
		errs = append(errs, "emoji_pin_price must not be negative")
	}

	if t := input.ReportThresholds; t != nil {
		if t.Normal == nil || t.Warning == nil || t.Urgent == nil {
			errs = append(errs, "report_thresholds must include normal, warning and urgent")
		} else {
			checkNonNegative("report_thresholds.normal", t.Normal)
			checkNonNegative("report_thresholds.warning", t.Warning)
			checkNonNegative("report_thresholds.urgent", t.Urgent)
		}
	}

	return errs
}

func applyConfigInput(cfg *model.AdminConfig, input dto.UpdateConfigInput) {
	if input.PostVisibilityDuration != nil {
		cfg.PostVisibilityDuration = *input.PostVisibilityDuration
	}
	if input.DailyFreePostLimit != nil {
		cfg.DailyFreePostLimit = *input.DailyFreePostLimit
	}
	if t := input.ReportThresholds; t != nil && t.Normal != nil && t.Warning != nil && t.Urgent != nil {
		cfg.ReportThresholds = model.ReportThresholds{
			Normal:  *t.Normal,
			Warning: *t.Warning,
			Urgent:  *t.Urgent,
		}
	}
	if input.BanThreshold != nil {
		cfg.BanThreshold = *input.BanThreshold
	}
	if input.BanDurationDays != nil {
		cfg.BanDurationDays = *input.BanDurationDays
	}
	if input.EmojiPinPrice != nil {
		cfg.EmojiPinPrice = *input.EmojiPinPrice
	}
	if input.DailyFreeCoin != nil {
		cfg.DailyFreeCoin = *input.DailyFreeCoin
	}
	if input.MaxActiveAnnouncements != nil {
		cfg.MaxActiveAnnouncements = *input.MaxActiveAnnouncements
	}
	if input.UrgentAnnouncementThreshold != nil {
		cfg.UrgentAnnouncementThreshold = *input.UrgentAnnouncementThreshold
	}
}
