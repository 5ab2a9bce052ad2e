package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var bookingColumns = []string{
	"id",
	"service_id",
	"provider_id",
	"time_slot_id",
	"user_id",
	"total_price",
	"status",
	"customer_name",
	"customer_email",
	"customer_phone",
	"customer_notes",
	"deposit_flow",
	"deposit_amount",
	"deposit_paid",
	"final_cost",
	"final_payment_status",
	"gateway_customer_id",
	"deposit_payment_intent_id",
	"final_payment_intent_id",
	"provider_notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"provider_id",
			"time_slot_id",
			"user_id",
			"total_price",
			"status",
			"customer_name",
			"customer_email",
			"customer_phone",
			"customer_notes",
			"deposit_flow",
			"deposit_amount",
			"deposit_paid",
			"final_payment_status",
		).
		Values(
			booking.ServiceID,
			booking.ProviderID,
			booking.TimeSlotID,
			booking.UserID,
			booking.TotalPrice,
			booking.Status,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.CustomerNotes,
			booking.DepositFlow,
			booking.DepositAmount,
			booking.DepositPaid,
			booking.FinalPaymentStatus,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetByProviderWithFilter получает бронирования провайдера с гибкой фильтрацией.
// Поддерживает фильтрацию по услуге, периоду, статусу и включению
// неактивных бронирований (отменённых/неуспешных).
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"created_at": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ConfirmUpdate данные, проставляемые при подтверждении бронирования
type ConfirmUpdate struct {
	CustomerNotes          *string
	DepositPaid            bool
	DepositPaymentIntentID *string
	GatewayCustomerID      *string
}

// ConfirmPending переводит ожидающее бронирование слота в confirmed.
// Переход выполняется одним условным UPDATE по (service_id, time_slot_id,
// status='pending'): повторная доставка события оплаты не находит
// ожидающей строки и получает ErrNoPendingBooking - обработчик webhook
// трактует это как идемпотентный no-op.
func (r *Repository) ConfirmPending(ctx context.Context, serviceID, timeSlotID int64, upd ConfirmUpdate) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", domain.StatusConfirmed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"service_id":   serviceID,
			"time_slot_id": timeSlotID,
			"status":       domain.StatusPending,
		})

	if upd.CustomerNotes != nil {
		updateBuilder = updateBuilder.Set("customer_notes", *upd.CustomerNotes)
	}
	if upd.DepositPaid {
		updateBuilder = updateBuilder.Set("deposit_paid", true)
	}
	if upd.DepositPaymentIntentID != nil {
		updateBuilder = updateBuilder.Set("deposit_payment_intent_id", *upd.DepositPaymentIntentID)
	}
	if upd.GatewayCustomerID != nil {
		updateBuilder = updateBuilder.Set("gateway_customer_id", *upd.GatewayCustomerID)
	}

	query, args, err := updateBuilder.
		Suffix("RETURNING " + joinColumns(bookingColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ConfirmPending - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoPendingBooking
	}
	if err != nil {
		return nil, fmt.Errorf("%w: ConfirmPending - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// AttachUser привязывает к бронированию пользователя (после идемпотентного
// создания аккаунта по email при подтверждении)
func (r *Repository) AttachUser(ctx context.Context, id, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("user_id", userID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AttachUser - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AttachUser - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AttachUser - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SettlementUpdate результат расчёта финального баланса
type SettlementUpdate struct {
	FinalCost            float64
	FinalPaymentStatus   domain.FinalPaymentStatus
	FinalPaymentIntentID *string
	ProviderNotes        *string
}

// UpdateSettlement записывает результат расчёта финального баланса.
// Идентификатор платёжного интента сохраняется и при неуспешном списании,
// чтобы у повторов и аудита была ссылка на попытку.
func (r *Repository) UpdateSettlement(ctx context.Context, id int64, upd SettlementUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("final_cost", upd.FinalCost).
		Set("final_payment_status", upd.FinalPaymentStatus).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if upd.FinalPaymentIntentID != nil {
		updateBuilder = updateBuilder.Set("final_payment_intent_id", *upd.FinalPaymentIntentID)
	}
	if upd.ProviderNotes != nil {
		updateBuilder = updateBuilder.Set("provider_notes", *upd.ProviderNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettlement - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateSettlement - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSettlement - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины.
// Условие по статусу гарантирует, что завершённые бронирования не отменяются.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cancellableStatuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		cancellableStatuses[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": cancellableStatuses}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCannotCancel
	}

	return nil
}

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanBooking(row scanner) (*domain.Booking, error) {
	var booking domain.Booking
	var finalPaymentStatus sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ServiceID,
		&booking.ProviderID,
		&booking.TimeSlotID,
		&booking.UserID,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.CustomerNotes,
		&booking.DepositFlow,
		&booking.DepositAmount,
		&booking.DepositPaid,
		&booking.FinalCost,
		&finalPaymentStatus,
		&booking.GatewayCustomerID,
		&booking.DepositPaymentIntentID,
		&booking.FinalPaymentIntentID,
		&booking.ProviderNotes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if finalPaymentStatus.Valid {
		status := domain.FinalPaymentStatus(finalPaymentStatus.String)
		booking.FinalPaymentStatus = &status
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan booking row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func joinColumns(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
