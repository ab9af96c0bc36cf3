package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"book-recommender/src/application"
	"book-recommender/src/domain"
)

// maxBodyBytes ограничение размера тела запроса
const maxBodyBytes = 64 << 10

var validate = validator.New()

// Handler HTTP-обработчики сервиса рекомендаций
type Handler struct {
	svc application.RecommendationService
}

// NewHandler создает обработчики поверх сервиса
func NewHandler(svc application.RecommendationService) *Handler {
	return &Handler{svc: svc}
}

// validateRequest возвращает domain.ErrEmptyRequest, если не заполнено ни одно поле
func validateRequest(req domain.Request) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	for _, fe := range verrs {
		if fe.Tag() == "required_without_all" {
			return domain.ErrEmptyRequest
		}
	}
	fe := verrs[0]
	return fmt.Errorf("поле %s не проходит проверку %s", fe.Field(), fe.Tag())
}

// Recommend подбирает рекомендации по JSON-телу {"title","author","genre"}.
//
// Method: POST
// Path: /api/v1/recommendations
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req domain.Request
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body must be a JSON object with title, author and genre", nil)
		return
	}
	h.recommend(w, r, req)
}

// RecommendQuery то же, что Recommend, но параметры берутся из строки запроса.
//
// Method: GET
// Path: /api/v1/recommendations?title=&author=&genre=
func (h *Handler) RecommendQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.recommend(w, r, domain.Request{
		Title:  q.Get("title"),
		Author: q.Get("author"),
		Genre:  q.Get("genre"),
	})
}

func (h *Handler) recommend(w http.ResponseWriter, r *http.Request, req domain.Request) {
	req = req.Normalize()
	if err := validateRequest(req); err != nil {
		if errors.Is(err, domain.ErrEmptyRequest) {
			respondError(w, http.StatusBadRequest, "EMPTY_REQUEST", application.EmptyRequestWarning, nil)
			return
		}
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Each field must be at most 200 characters", nil)
		return
	}

	resp, err := h.svc.Recommend(r.Context(), req)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build recommendations", err)
		return
	}
	respondData(w, resp)
}

// Health возвращает размер каталога и наличие матрицы сходства.
//
// Method: GET
// Path: /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.Status(r.Context())
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Catalog store is unavailable", err)
		return
	}
	respondData(w, healthResponse{Status: "ok", Books: status.Books, Similarity: status.Similarity})
}

type healthResponse struct {
	Status     string `json:"status"`
	Books      int    `json:"books"`
	Similarity bool   `json:"similarity"`
}
