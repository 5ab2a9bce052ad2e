package start_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers"
	startBooking "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/start_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidInput           = "некорректные данные бронирования"
	msgServiceNotFound        = "услуга не найдена"
	msgProviderNotFound       = "провайдер не найден"
	msgSlotNotFound           = "временной слот не найден"
	msgSlotMismatch           = "слот не относится к выбранной услуге"
	msgSlotUnavailable        = "выбранный временной слот уже занят"
	msgPaymentSetupIncomplete = "провайдер не завершил настройку приёма платежей"
	msgGatewayError           = "платёжный сервис временно недоступен"
)

type Handler struct {
	useCase StartBookingUseCase
	logger  Logger
}

func NewHandler(useCase StartBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req StartBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, startBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: service_id=%d, slot_id=%d, error=%v",
				req.ServiceID, req.TimeSlotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, startBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, startBooking.ErrProviderNotFound):
			h.logger.Warn("POST /bookings - Provider not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		case errors.Is(err, startBooking.ErrSlotNotFound):
			h.logger.Warn("POST /bookings - Slot not found: slot_id=%d", req.TimeSlotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, startBooking.ErrSlotMismatch):
			h.logger.Warn("POST /bookings - Slot mismatch: service_id=%d, slot_id=%d",
				req.ServiceID, req.TimeSlotID)
			handlers.RespondBadRequest(w, msgSlotMismatch)

		case errors.Is(err, startBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: slot_id=%d", req.TimeSlotID)
			handlers.RespondError(w, http.StatusConflict, msgSlotUnavailable)

		case errors.Is(err, startBooking.ErrPaymentSetupIncomplete):
			h.logger.Warn("POST /bookings - Payment setup incomplete: service_id=%d", req.ServiceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgPaymentSetupIncomplete)

		case errors.Is(err, startBooking.ErrGateway):
			h.logger.Error("POST /bookings - Gateway error: service_id=%d, slot_id=%d, error=%v",
				req.ServiceID, req.TimeSlotID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayError)

		default:
			h.logger.Error("POST /bookings - Failed to start booking: service_id=%d, slot_id=%d, error=%v",
				req.ServiceID, req.TimeSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking started successfully: booking_id=%d, session=%s",
		result.BookingID, result.PaymentSessionID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
