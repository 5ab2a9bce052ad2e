package settle_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers"
	settleBooking "github.com/m04kA/SMC-BeautyBookingService/internal/usecase/settle_booking"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные данные расчёта"
	msgInvalidAmount      = "итоговая стоимость не может быть отрицательной"
	msgNotFound           = "бронирование не найдено"
	msgDepositNotPaid     = "депозит по бронированию не оплачен"
	msgAlreadySettled     = "бронирование уже рассчитано"
	msgGatewayError       = "платёжный сервис временно недоступен"
)

type Handler struct {
	useCase SettleBookingUseCase
	logger  Logger
}

func NewHandler(useCase SettleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/settle
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/settle - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req SettleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/settle - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(bookingID))
	if err != nil {
		switch {
		case errors.Is(err, settleBooking.ErrInvalidAmount):
			h.logger.Warn("POST /bookings/{id}/settle - Invalid amount: booking_id=%d, final_cost=%.2f",
				bookingID, req.FinalCost)
			handlers.RespondBadRequest(w, msgInvalidAmount)

		case errors.Is(err, settleBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/settle - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, settleBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/settle - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settleBooking.ErrDepositNotPaid):
			h.logger.Warn("POST /bookings/{id}/settle - Deposit not paid: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgDepositNotPaid)

		case errors.Is(err, settleBooking.ErrAlreadySettled):
			h.logger.Warn("POST /bookings/{id}/settle - Already settled: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadySettled)

		case errors.Is(err, settleBooking.ErrGateway):
			h.logger.Error("POST /bookings/{id}/settle - Gateway error: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgGatewayError)

		default:
			h.logger.Error("POST /bookings/{id}/settle - Failed to settle booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/settle - Settlement finished: booking_id=%d, success=%t, balance=%.2f",
		bookingID, result.Success, result.BalanceDollars)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
