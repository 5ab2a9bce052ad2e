package start_booking

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-BeautyBookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}
	if req.TimeSlotID <= 0 {
		return fmt.Errorf("%w: timeSlotId must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Customer.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if len(req.Customer.Name) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customer name is too long", ErrInvalidInput)
	}
	if err := validateEmail(req.Customer.Email); err != nil {
		return err
	}
	if req.AmountCents <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	if req.FullPriceCents <= 0 {
		return fmt.Errorf("%w: full price must be positive", ErrInvalidInput)
	}
	if req.DepositFlow && req.AmountCents > req.FullPriceCents {
		return fmt.Errorf("%w: deposit cannot exceed full price", ErrInvalidInput)
	}
	if !req.DepositFlow && req.AmountCents != req.FullPriceCents {
		return fmt.Errorf("%w: amount must equal full price for non-deposit bookings", ErrInvalidInput)
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if len(email) > domain.MaxCustomerEmailLength {
		return fmt.Errorf("%w: customer email is too long", ErrInvalidInput)
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("%w: customer email is malformed", ErrInvalidInput)
	}
	return nil
}
