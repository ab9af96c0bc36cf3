package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"book-recommender/src/logging"
)

// envelope общий формат ответа API
type envelope struct {
	Status string    `json:"status"`
	Data   any       `json:"data,omitempty"`
	Error  *apiError `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// sanitizeLogValue заменяет управляющие символы, чтобы пользовательский ввод не ломал строки лога
func sanitizeLogValue(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			fmt.Fprintf(&b, "\\x%02x", r)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// respondJSON отправляет JSON-ответ
func respondJSON(w http.ResponseWriter, status int, body *envelope) {
	data, err := json.Marshal(body)
	if err != nil {
		logging.Error().Err(err).Msg("не удалось сериализовать ответ")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("не удалось записать ответ")
	}
}

// respondData отправляет успешный ответ
func respondData(w http.ResponseWriter, data any) {
	respondJSON(w, http.StatusOK, &envelope{Status: "success", Data: data})
}

// respondError отправляет ошибку; причина, если есть, пишется только в лог
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		logging.Error().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("ошибка API")
	}
	respondJSON(w, status, &envelope{
		Status: "error",
		Error:  &apiError{Code: code, Message: message},
	})
}
