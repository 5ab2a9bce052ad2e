package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с временными слотами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var slotColumns = []string{
	"id",
	"service_id",
	"provider_id",
	"slot_date",
	"start_time",
	"end_time",
	"is_available",
	"created_at",
	"updated_at",
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := r.scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// Hold атомарно занимает слот.
// Флаг доступности сбрасывается одним условным UPDATE, и именно
// количество затронутых строк является решением о допуске:
// true - слот был свободен и теперь занят, false - слот уже занят.
// Два конкурентных вызова для одного слота не могут оба получить true.
func (r *Repository) Hold(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_available", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "is_available": true}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: Hold - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: Hold - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: Hold - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

// Release возвращает слоту доступность.
// Используется для компенсации неудачного создания платёжной сессии
// и при отмене бронирования.
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("is_available", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// LockOverlapping занимает все слоты того же провайдера на ту же дату,
// интервалы которых реально пересекаются с указанным слотом.
// Кандидаты сужаются запросом по провайдеру и дате, само пересечение
// проверяется доменным предикатом TimeSlot.Overlaps: граничащие слоты
// (конец одного равен началу другого) остаются доступными.
// Возвращает количество занятых слотов.
func (r *Repository) LockOverlapping(ctx context.Context, slot *domain.TimeSlot) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{
			"provider_id":  slot.ProviderID,
			"slot_date":    slot.SlotDate,
			"is_available": true,
		}).
		Where(squirrel.NotEq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: LockOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: LockOverlapping - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overlappingIDs := make([]int64, 0)
	for rows.Next() {
		candidate, err := r.scanSlot(rows)
		if err != nil {
			return 0, fmt.Errorf("%w: LockOverlapping - scan slot: %v", ErrScanRow, err)
		}
		if slot.Overlaps(candidate) {
			overlappingIDs = append(overlappingIDs, candidate.ID)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: LockOverlapping - rows error: %v", ErrScanRow, err)
	}

	if len(overlappingIDs) == 0 {
		return 0, nil
	}

	query, args, err = psqlbuilder.Update("time_slots").
		Set("is_available", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": overlappingIDs, "is_available": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: LockOverlapping - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: LockOverlapping - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: LockOverlapping - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ListAvailable получает доступные слоты услуги на указанную дату,
// отсортированные по времени начала
func (r *Repository) ListAvailable(ctx context.Context, serviceID int64, date time.Time) ([]domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{
			"service_id":   serviceID,
			"slot_date":    date,
			"is_available": true,
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.TimeSlot, 0)
	for rows.Next() {
		slot, err := r.scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, *slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanSlot(row scanner) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.ServiceID,
		&slot.ProviderID,
		&slot.SlotDate,
		&slot.StartTime,
		&slot.EndTime,
		&slot.IsAvailable,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
