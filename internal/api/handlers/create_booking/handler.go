package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	createBooking "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgInvalidDateOrTime   = "некорректный формат даты или времени, ожидается YYYY-MM-DD и HH:MM"
	msgResourceNotFound    = "ресурс не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgCampaignNotFound    = "кампания не найдена"
	msgServiceNotAvailable = "услуга недоступна у выбранного ресурса"
	msgCampaignNotLinked   = "кампания не относится к выбранной услуге"
	msgInvalidBookingDate  = "некорректная дата бронирования"
	msgResourceClosed      = "ресурс не работает в выбранное время"
	msgSlotConflict        = "выбранный временной слот занят"
	msgStaleData           = "слот был занят параллельным запросом, обновите список слотов"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Конфликт слота несет детали: с чем именно пересеклись
		var conflict *createBooking.ConflictError
		if errors.As(err, &conflict) {
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, resource_id=%d, source=%s, conflicting_id=%d",
				userID, req.ResourceID, conflict.Source, conflict.ConflictingID)
			handlers.RespondErrorWithDetails(w, http.StatusConflict, FromConflictError(msgSlotConflict, conflict))
			return
		}

		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrStaleData):
			h.logger.Warn("POST /bookings - Slot taken by concurrent request: user_id=%d, resource_id=%d",
				userID, req.ResourceID)
			handlers.RespondConflict(w, msgStaleData)

		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, createBooking.ErrResourceClosed):
			h.logger.Warn("POST /bookings - Resource closed: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondConflict(w, msgResourceClosed)

		case errors.Is(err, createBooking.ErrResourceNotFound):
			h.logger.Warn("POST /bookings - Resource not found: resource_id=%d", req.ResourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: user_id=%d, service_id=%d", userID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrCampaignNotFound):
			h.logger.Warn("POST /bookings - Campaign not found: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondNotFound(w, msgCampaignNotFound)

		case errors.Is(err, createBooking.ErrServiceNotAvailableOnResource):
			h.logger.Warn("POST /bookings - Service not available on resource: resource_id=%d, service_id=%d",
				req.ResourceID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, createBooking.ErrCampaignNotLinked):
			h.logger.Warn("POST /bookings - Campaign not linked to service: resource_id=%d, service_id=%d",
				req.ResourceID, req.ServiceID)
			handlers.RespondBadRequest(w, msgCampaignNotLinked)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, resource_id=%d", userID, req.ResourceID)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, resource_id=%d, error=%v",
				userID, req.ResourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, resource_id=%d",
		result.ID, userID, req.ResourceID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
