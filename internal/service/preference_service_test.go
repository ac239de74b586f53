package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarsync-api/internal/dto"
	"github.com/noah-isme/scholarsync-api/internal/models"
	"github.com/noah-isme/scholarsync-api/internal/repository"
	appErrors "github.com/noah-isme/scholarsync-api/pkg/errors"
)

func TestPreferenceService(t *testing.T) {
	svc := NewPreferenceService(repository.NewPreferenceRepository(), nil, zap.NewNop())
	ctx := context.Background()

	prefs, err := svc.Get(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), *prefs)

	off := false
	updated, err := svc.Update(ctx, "viewer-1", dto.UpdatePreferencesRequest{ClassReminderMinutes: 60, ExamAlerts: &off})
	require.NoError(t, err)
	assert.Equal(t, models.Preferences{ClassReminderMinutes: 60, ExamAlerts: false}, *updated)

	prefs, err = svc.Get(ctx, "viewer-1")
	require.NoError(t, err)
	assert.Equal(t, 60, prefs.ClassReminderMinutes)

	other, err := svc.Get(ctx, "viewer-2")
	require.NoError(t, err)
	assert.Equal(t, 15, other.ClassReminderMinutes)

	_, err = svc.Update(ctx, "viewer-1", dto.UpdatePreferencesRequest{ClassReminderMinutes: 45, ExamAlerts: &off})
	requireAppError(t, err, appErrors.ErrValidation.Code)

	_, err = svc.Update(ctx, "viewer-1", dto.UpdatePreferencesRequest{ClassReminderMinutes: 30})
	requireAppError(t, err, appErrors.ErrValidation.Code)
}
