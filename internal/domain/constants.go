package domain

// Settlement defaults
const (
	DefaultFinalCostDiscountPct    = 0.0
	DefaultPlatformFeePercent      = 7.0
	DefaultMinBookingNoticeMinutes = 60
)

// Business validation constants
const (
	MinDiscountPct   = 0.0
	MaxDiscountPct   = 100.0
	MinCommissionPct = 0.0
	MaxCommissionPct = 50.0

	MaxNotesLength         = 500
	MaxCancelReasonLength  = 500
	MaxCustomerNameLength  = 200
	MaxCustomerEmailLength = 320
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, при которых бронирование не удерживает слот
// Используется при фильтрации бронирований провайдера
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusFailed,
}

// ActiveStatuses список статусов бронирований, удерживающих слот
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
