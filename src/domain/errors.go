package domain

import "errors"

var (
	// ErrEmptyRequest ни одно поле запроса не заполнено
	ErrEmptyRequest = errors.New("запрос не содержит ни книги, ни автора, ни жанра")

	// ErrBookNotFound по названию не найдено ни одной книги
	ErrBookNotFound = errors.New("книга не найдена")

	// ErrOutOfBounds id книги выходит за границы матрицы сходства
	ErrOutOfBounds = errors.New("id вне границ матрицы сходства")

	// ErrSimilarityUnavailable матрица сходства не загружена
	ErrSimilarityUnavailable = errors.New("матрица сходства недоступна")
)
