package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_available_slots"
)

const (
	msgInvalidResourceID   = "некорректный ID ресурса"
	msgInvalidServiceID    = "некорректный ID услуги"
	msgMissingServiceID    = "ID услуги обязателен"
	msgMissingDate         = "дата обязательна"
	msgInvalidParams       = "некорректные параметры запроса, ожидается дата YYYY-MM-DD"
	msgResourceNotFound    = "ресурс не найден"
	msgServiceNotFound     = "услуга не найдена"
	msgCampaignNotFound    = "кампания не найдена"
	msgServiceNotAvailable = "услуга недоступна у выбранного ресурса"
	msgCampaignNotLinked   = "кампания не относится к выбранной услуге"
	msgInvalidDate         = "некорректная дата, слоты доступны только на будущие даты"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/resources/{resourceId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), campaignId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем resourceId из URL
	resourceIDStr := vars["resourceId"]
	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/available-slots - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /resources/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /resources/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Опциональный campaignId
	campaignIDStr := r.URL.Query().Get("campaignId")

	// Формируем запрос к use case (с парсингом даты и campaignId)
	useCaseReq, err := ToUseCaseRequest(resourceID, serviceID, campaignIDStr, dateStr)
	if err != nil {
		h.logger.Warn("GET /resources/{id}/available-slots - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, getAvailableSlots.ErrResourceNotFound):
			h.logger.Warn("GET /resources/{id}/available-slots - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /resources/{id}/available-slots - Service not found: resource_id=%d, service_id=%d",
				resourceID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrCampaignNotFound):
			h.logger.Warn("GET /resources/{id}/available-slots - Campaign not found: resource_id=%d, campaign_id=%s",
				resourceID, campaignIDStr)
			handlers.RespondNotFound(w, msgCampaignNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotAvailableOnResource):
			h.logger.Warn("GET /resources/{id}/available-slots - Service not available on resource: resource_id=%d, service_id=%d",
				resourceID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, getAvailableSlots.ErrCampaignNotLinked):
			h.logger.Warn("GET /resources/{id}/available-slots - Campaign not linked to service: resource_id=%d, service_id=%d, campaign_id=%s",
				resourceID, serviceID, campaignIDStr)
			handlers.RespondBadRequest(w, msgCampaignNotLinked)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /resources/{id}/available-slots - Invalid date: resource_id=%d, date=%s",
				resourceID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /resources/{id}/available-slots - Invalid input: resource_id=%d, error=%v",
				resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /resources/{id}/available-slots - Failed to get slots: resource_id=%d, service_id=%d, error=%v",
				resourceID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /resources/{id}/available-slots - Slots retrieved successfully: resource_id=%d, service_id=%d, slots_count=%d",
		resourceID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
