package handlers

import (
	"encoding/json"
	"net/http"

	"graphblog/internal/middleware"
	"graphblog/internal/service"
)

// ErrorResponse - ответ с ошибкой, общий для GraphQL и REST
type ErrorResponse struct {
	Message string               `json:"message"`
	Status  int                  `json:"status"`
	Data    []service.FieldError `json:"data,omitempty"`
}

func newErrorResponse(appErr *service.Error) ErrorResponse {
	return ErrorResponse{Message: appErr.Message, Status: appErr.Status, Data: appErr.Data}
}

// writeError - отправка ошибки приложения клиенту
func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := service.AsError(err)
	if appErr.Status >= http.StatusInternalServerError {
		h.Log.Errorw("Ошибка обработки запроса",
			"requestID", middleware.RequestIDFromContext(r.Context()),
			"path", r.URL.Path,
			"error", appErr.Unwrap(),
		)
	}
	writeJSON(w, newErrorResponse(appErr), appErr.Status)
}

// writeJSON - функция для успешных ответов
func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
