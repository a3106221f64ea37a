package service

import (
	"context"
	"testing"

	"github.com/campusgo/admin-backend/internal/dto"
	"github.com/campusgo/admin-backend/internal/model"
	"github.com/campusgo/admin-backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestConfigGetFallsBackToDefaults(t *testing.T) {
	svc := NewConfigService(&fakeConfigRepo{}, nil)

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.PostVisibilityDuration)
	assert.Equal(t, model.ReportThresholds{Normal: 2, Warning: 5, Urgent: 10}, cfg.ReportThresholds)
	assert.Equal(t, 5, cfg.BanThreshold)
	assert.Equal(t, 1, cfg.Version)
}

func TestConfigUpdateBumpsVersion(t *testing.T) {
	def := model.DefaultAdminConfig()
	repo := &fakeConfigRepo{cfg: &def}
	svc := NewConfigService(repo, nil)

	updated, err := svc.Update(context.Background(), dto.UpdateConfigInput{
		PostVisibilityDuration: intPtr(48),
		ReportThresholds: &dto.ReportThresholdsInput{
			Normal:  intPtr(3),
			Warning: intPtr(6),
			Urgent:  intPtr(12),
		},
		Version: 1,
	}, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, 48, updated.PostVisibilityDuration)
	assert.Equal(t, 12, updated.ReportThresholds.Urgent)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, "admin-1", updated.UpdatedBy)

	// Fields not in the payload are untouched.
	assert.Equal(t, 5, updated.BanThreshold)

	// The cache serves the new value.
	cached, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 48, cached.PostVisibilityDuration)
}

func TestConfigUpdateStaleVersionConflicts(t *testing.T) {
	def := model.DefaultAdminConfig()
	def.Version = 3
	svc := NewConfigService(&fakeConfigRepo{cfg: &def}, nil)

	_, err := svc.Update(context.Background(), dto.UpdateConfigInput{
		BanThreshold: intPtr(7),
		Version:      2,
	}, "admin-1")

	assert.ErrorIs(t, err, apperror.ErrVersionConflict)
}

func TestConfigUpdateRejectsNegativeValues(t *testing.T) {
	def := model.DefaultAdminConfig()
	svc := NewConfigService(&fakeConfigRepo{cfg: &def}, nil)

	_, err := svc.Update(context.Background(), dto.UpdateConfigInput{
		BanDurationDays: intPtr(-1),
		Version:         1,
	}, "admin-1")

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestValidateConfigInput(t *testing.T) {
	tests := []struct {
		name    string
		input   dto.UpdateConfigInput
		wantErr bool
	}{
		{"empty payload", dto.UpdateConfigInput{Version: 1}, false},
		{"negative price", dto.UpdateConfigInput{EmojiPinPrice: floatPtr(-0.5), Version: 1}, true},
		{"negative threshold", dto.UpdateConfigInput{ReportThresholds: &dto.ReportThresholdsInput{
			Normal: intPtr(-2), Warning: intPtr(5), Urgent: intPtr(10),
		}, Version: 1}, true},
		{"partial thresholds", dto.UpdateConfigInput{ReportThresholds: &dto.ReportThresholdsInput{
			Normal: intPtr(2),
		}, Version: 1}, true},
		// Ordering between tiers is not enforced.
		{"unordered thresholds", dto.UpdateConfigInput{ReportThresholds: &dto.ReportThresholdsInput{
			Normal: intPtr(10), Warning: intPtr(5), Urgent: intPtr(2),
		}, Version: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateConfigInput(tt.input)
			if tt.wantErr {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}
