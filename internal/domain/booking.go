package domain

import "time"

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusFailed    BookingStatus = "failed"
)

// FinalPaymentStatus represents the status of the post-service balance
// payment for deposit-flow bookings
type FinalPaymentStatus string

const (
	FinalPaymentPending FinalPaymentStatus = "pending"
	FinalPaymentPaid    FinalPaymentStatus = "paid"
	FinalPaymentFailed  FinalPaymentStatus = "failed"
)

// Booking represents a customer booking of one time slot.
// Guest bookings are allowed: UserID is nil and the guest's contact
// information lives in the customer fields.
type Booking struct {
	ID         int64
	ServiceID  int64
	ProviderID int64
	TimeSlotID int64
	UserID     *int64

	// TotalPrice is the full service price in decimal dollars.
	// For deposit-flow bookings only DepositAmount is charged upfront.
	TotalPrice float64
	Status     BookingStatus

	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerNotes *string

	// Deposit-flow fields. DepositAmount and FinalPaymentStatus are nil
	// for pay-in-full bookings.
	DepositFlow        bool
	DepositAmount      *float64
	DepositPaid        bool
	FinalCost          *float64
	FinalPaymentStatus *FinalPaymentStatus

	GatewayCustomerID      *string
	DepositPaymentIntentID *string
	FinalPaymentIntentID   *string
	ProviderNotes          *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still holds its time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if the booking reached a final state
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCancelled || b.Status == StatusFailed
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsSettled returns true if the final balance has already been collected
func (b *Booking) IsSettled() bool {
	return b.FinalPaymentStatus != nil && *b.FinalPaymentStatus == FinalPaymentPaid
}

// ProviderBookingsFilter фильтр для получения бронирований провайдера
type ProviderBookingsFilter struct {
	ProviderID      int64          // Обязательный параметр
	ServiceID       *int64         // Фильтр по услуге (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отменённые и неуспешные бронирования
}
