package delete_resource_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/service/schedule"
)

const (
	msgInvalidResourceID = "некорректный ID ресурса"
	msgInvalidBlockID    = "некорректный ID блокировки"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgResourceNotFound  = "ресурс не найден"
	msgBlockNotFound     = "блокировка не найдена"
	msgForbidden         = "доступ запрещен"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/resources/{resourceId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем resourceId из URL
	resourceIDStr := vars["resourceId"]
	resourceID, err := strconv.ParseInt(resourceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /resources/{id}/blocks/{blockId} - Invalid resource ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	// Извлекаем blockId из URL
	blockIDStr := vars["blockId"]
	blockID, err := strconv.ParseInt(blockIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /resources/{id}/blocks/{blockId} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /resources/{id}/blocks/{blockId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Удаляем блокировку (сервис сам проверит права владельца)
	err = h.service.DeleteBlock(r.Context(), resourceID, blockID, userID)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrResourceNotFound):
			h.logger.Warn("DELETE /resources/{id}/blocks/{blockId} - Resource not found: resource_id=%d", resourceID)
			handlers.RespondNotFound(w, msgResourceNotFound)

		case errors.Is(err, schedule.ErrBlockNotFound):
			h.logger.Warn("DELETE /resources/{id}/blocks/{blockId} - Block not found: resource_id=%d, block_id=%d",
				resourceID, blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("DELETE /resources/{id}/blocks/{blockId} - Access denied: resource_id=%d, user_id=%d",
				resourceID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /resources/{id}/blocks/{blockId} - Failed to delete block: block_id=%d, error=%v",
				blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /resources/{id}/blocks/{blockId} - Block deleted successfully: block_id=%d, resource_id=%d, user_id=%d",
		blockID, resourceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
