package get_provider_settings

import (
	"context"

	"github.com/m04kA/SMC-BeautyBookingService/internal/service/settings/models"
)

type SettingsService interface {
	GetByProviderID(ctx context.Context, providerID int64) (*models.SettingsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
