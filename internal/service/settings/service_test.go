package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	settingsstore "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBookingService/internal/service/settings/models"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type settingsRepoMock struct {
	settings    *domain.ProviderSettings
	getErr      error
	upserted    *domain.ProviderSettings
	upsertCalls int
}

func (m *settingsRepoMock) GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.settings, nil
}

func (m *settingsRepoMock) Upsert(ctx context.Context, settings *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	m.upsertCalls++
	m.upserted = settings
	return settings, nil
}

type catalogMock struct {
	err error
}

func (m *catalogMock) GetProvider(ctx context.Context, providerID int64) (*catalogservice.Provider, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &catalogservice.Provider{ID: providerID}, nil
}

func TestGetByProviderID_ReturnsDefaultsWhenMissing(t *testing.T) {
	repo := &settingsRepoMock{getErr: settingsstore.ErrSettingsNotFound}
	svc := NewService(repo, &catalogMock{}, nopLogger{})

	resp, err := svc.GetByProviderID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ProviderID)
	assert.Equal(t, domain.DefaultFinalCostDiscountPct, resp.FinalCostDiscountPct)
	assert.Nil(t, resp.CommissionPct)
	// Значения по умолчанию не сохраняются
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestGetByProviderID_ReturnsStoredSettings(t *testing.T) {
	repo := &settingsRepoMock{settings: &domain.ProviderSettings{
		ProviderID:           3,
		FinalCostDiscountPct: 10,
		CommissionPct:        ptr.Ptr(12.0),
	}}
	svc := NewService(repo, &catalogMock{}, nopLogger{})

	resp, err := svc.GetByProviderID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, 10.0, resp.FinalCostDiscountPct)
	require.NotNil(t, resp.CommissionPct)
	assert.Equal(t, 12.0, *resp.CommissionPct)
}

func TestUpdate_PartialUpdateKeepsOtherFields(t *testing.T) {
	repo := &settingsRepoMock{settings: &domain.ProviderSettings{
		ProviderID:           3,
		FinalCostDiscountPct: 10,
		CommissionPct:        ptr.Ptr(12.0),
	}}
	svc := NewService(repo, &catalogMock{}, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		ProviderID:           3,
		FinalCostDiscountPct: ptr.Ptr(15.0),
	})

	require.NoError(t, err)
	assert.Equal(t, 15.0, resp.FinalCostDiscountPct)
	// Комиссия не менялась
	require.NotNil(t, resp.CommissionPct)
	assert.Equal(t, 12.0, *resp.CommissionPct)
	assert.Equal(t, 1, repo.upsertCalls)
}

func TestUpdate_CreatesSettingsWhenMissing(t *testing.T) {
	repo := &settingsRepoMock{getErr: settingsstore.ErrSettingsNotFound}
	svc := NewService(repo, &catalogMock{}, nopLogger{})

	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		ProviderID:    3,
		CommissionPct: ptr.Ptr(9.0),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultFinalCostDiscountPct, resp.FinalCostDiscountPct)
	require.NotNil(t, resp.CommissionPct)
	assert.Equal(t, 9.0, *resp.CommissionPct)
}

func TestUpdate_ProviderNotFound(t *testing.T) {
	repo := &settingsRepoMock{}
	svc := NewService(repo, &catalogMock{err: catalogservice.ErrProviderNotFound}, nopLogger{})

	_, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{ProviderID: 404})
	assert.ErrorIs(t, err, ErrProviderNotFound)
	assert.Equal(t, 0, repo.upsertCalls)
}

func TestUpdate_Validation(t *testing.T) {
	svc := NewService(&settingsRepoMock{}, &catalogMock{}, nopLogger{})

	tests := []struct {
		name string
		req  *models.UpdateSettingsRequest
	}{
		{"zero provider id", &models.UpdateSettingsRequest{ProviderID: 0}},
		{"discount above max", &models.UpdateSettingsRequest{ProviderID: 3, FinalCostDiscountPct: ptr.Ptr(101.0)}},
		{"negative discount", &models.UpdateSettingsRequest{ProviderID: 3, FinalCostDiscountPct: ptr.Ptr(-1.0)}},
		{"commission above max", &models.UpdateSettingsRequest{ProviderID: 3, CommissionPct: ptr.Ptr(51.0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
