package settle_booking

import (
	"context"

	settleBooking "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/settle_booking"
)

type SettleBookingUseCase interface {
	Execute(ctx context.Context, req *settleBooking.Request) (*settleBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
