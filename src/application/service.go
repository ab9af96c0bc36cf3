package application

import (
	"context"

	"book-recommender/src/domain"
)

// RecommendationService интерфейс сервиса рекомендаций
type RecommendationService interface {
	// Recommend обрабатывает одну отправку формы: до трех секций без повторов названий
	Recommend(ctx context.Context, req domain.Request) (*domain.Response, error)

	// Status возвращает размер каталога и признак наличия матрицы сходства
	Status(ctx context.Context) (Status, error)
}

// Status состояние сервиса
type Status struct {
	Books      int  `json:"books"`
	Similarity bool `json:"similarity"`
}
