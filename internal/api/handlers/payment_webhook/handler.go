package payment_webhook

import (
	"net/http"

	"github.com/m04kA/SMC-BeautyBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBookingService/internal/integrations/paymentgw"
)

const (
	msgInvalidPayload = "некорректное тело события"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhooks/payment
// Шлюз повторяет доставку до получения 200, поэтому обработанные и
// неактуальные события подтверждаются успехом. 400 возвращается только
// на нечитаемый payload.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Конверт события декодируем без запрета неизвестных полей:
	// шлюз добавляет поля без смены версии API
	var event paymentgw.Event
	if err := handlers.DecodeJSONLenient(r, &event); err != nil {
		h.logger.Warn("POST /webhooks/payment - Invalid payload: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	// Интересует только завершение checkout-сессии
	if event.Type != paymentgw.EventCheckoutSessionCompleted {
		h.logger.Info("POST /webhooks/payment - Skipping event type=%s, id=%s", event.Type, event.ID)
		handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Received: true})
		return
	}

	useCaseReq, err := ToUseCaseRequest(&event.Data.Object)
	if err != nil {
		h.logger.Warn("POST /webhooks/payment - Invalid metadata in event id=%s: %v", event.ID, err)
		handlers.RespondBadRequest(w, msgInvalidPayload)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Временная ошибка: отвечаем 500, шлюз повторит доставку
		h.logger.Error("POST /webhooks/payment - Failed to process event id=%s: %v", event.ID, err)
		handlers.RespondInternalError(w)
		return
	}

	if result.Processed {
		h.logger.Info("POST /webhooks/payment - Event id=%s confirmed booking id=%d", event.ID, result.BookingID)
	} else {
		h.logger.Info("POST /webhooks/payment - Event id=%s skipped, no pending booking", event.ID)
	}
	handlers.RespondJSON(w, http.StatusOK, WebhookResponse{Received: true, Processed: result.Processed})
}
