package settings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с настройками расчётов провайдера
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderID получает настройки провайдера
func (r *Repository) GetByProviderID(ctx context.Context, providerID int64) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"provider_id",
		"final_cost_discount_pct",
		"commission_pct",
		"created_at",
		"updated_at",
	).
		From("provider_settings").
		Where(squirrel.Eq{"provider_id": providerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - build select query: %v", ErrBuildQuery, err)
	}

	var settings domain.ProviderSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.ProviderID,
		&settings.FinalCostDiscountPct,
		&settings.CommissionPct,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderID - scan settings: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return &settings, nil
}

// Upsert создает или обновляет настройки провайдера
func (r *Repository) Upsert(ctx context.Context, settings *domain.ProviderSettings) (*domain.ProviderSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("provider_settings").
		Columns(
			"provider_id",
			"final_cost_discount_pct",
			"commission_pct",
		).
		Values(
			settings.ProviderID,
			settings.FinalCostDiscountPct,
			settings.CommissionPct,
		).
		Suffix(`ON CONFLICT (provider_id) DO UPDATE SET
			final_cost_discount_pct = EXCLUDED.final_cost_discount_pct,
			commission_pct = EXCLUDED.commission_pct,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time

	return settings, nil
}
