package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-BeautyBookingService/internal/infra/storage/settings"
	catalogClient "github.com/m04kA/SMC-BeautyBookingService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-BeautyBookingService/internal/service/settings/models"
)

// Service сервис для работы с настройками расчётов провайдера
type Service struct {
	settingsRepo  SettingsRepository
	catalogClient CatalogServiceClient
	logger        Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	catalogClient CatalogServiceClient,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo:  settingsRepo,
		catalogClient: catalogClient,
		logger:        logger,
	}
}

// GetByProviderID получает настройки провайдера.
// Отсутствие записи - не ошибка для вызывающего: возвращаются
// настройки по умолчанию без сохранения в БД.
func (s *Service) GetByProviderID(ctx context.Context, providerID int64) (*models.SettingsResponse, error) {
	s.logger.Info("GetByProviderID: fetching settings for provider=%d", providerID)

	settings, err := s.settingsRepo.GetByProviderID(ctx, providerID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("GetByProviderID: no settings for provider=%d, using defaults", providerID)
			return models.FromDomainSettings(&domain.ProviderSettings{
				ProviderID:           providerID,
				FinalCostDiscountPct: domain.DefaultFinalCostDiscountPct,
			}), nil
		}
		s.logger.Error("GetByProviderID: repository error for provider=%d: %v", providerID, err)
		return nil, fmt.Errorf("%w: GetByProviderID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByProviderID: successfully fetched settings for provider=%d", providerID)
	return models.FromDomainSettings(settings), nil
}

// Update обновляет настройки провайдера.
// Поддерживает частичное обновление - обновляются только указанные поля.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for provider=%d", req.ProviderID)

	// 1. Валидируем входные данные
	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for provider=%d: %v", req.ProviderID, err)
		return nil, err
	}

	// 2. Проверяем существование провайдера в каталоге
	if _, err := s.catalogClient.GetProvider(ctx, req.ProviderID); err != nil {
		if errors.Is(err, catalogClient.ErrProviderNotFound) {
			s.logger.Warn("Update: provider id=%d not found", req.ProviderID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Update: failed to get provider id=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: failed to get provider: %v", ErrInternal, err)
	}

	// 3. Получаем текущие настройки, отсутствие - значения по умолчанию
	settings, err := s.settingsRepo.GetByProviderID(ctx, req.ProviderID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error for provider=%d: %v", req.ProviderID, err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		settings = &domain.ProviderSettings{
			ProviderID:           req.ProviderID,
			FinalCostDiscountPct: domain.DefaultFinalCostDiscountPct,
		}
	}

	// 4. Применяем обновления и сохраняем
	req.ApplyToSettings(settings)

	updated, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: failed to upsert settings for provider=%d: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for provider=%d", req.ProviderID)
	return models.FromDomainSettings(updated), nil
}

// validateUpdate валидирует параметры настроек
func validateUpdate(req *models.UpdateSettingsRequest) error {
	if req.ProviderID <= 0 {
		return fmt.Errorf("%w: providerId must be positive", ErrInvalidInput)
	}
	if req.FinalCostDiscountPct != nil {
		if *req.FinalCostDiscountPct < domain.MinDiscountPct || *req.FinalCostDiscountPct > domain.MaxDiscountPct {
			return fmt.Errorf("%w: finalCostDiscountPct must be between %.0f and %.0f",
				ErrInvalidInput, domain.MinDiscountPct, domain.MaxDiscountPct)
		}
	}
	if req.CommissionPct != nil {
		if *req.CommissionPct < domain.MinCommissionPct || *req.CommissionPct > domain.MaxCommissionPct {
			return fmt.Errorf("%w: commissionPct must be between %.0f and %.0f",
				ErrInvalidInput, domain.MinCommissionPct, domain.MaxCommissionPct)
		}
	}
	return nil
}
