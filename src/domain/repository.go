package domain

import "context"

// CatalogRepository интерфейс для чтения каталога книг. Хранилище доступно только на чтение.
type CatalogRepository interface {
	// FindByTitle находит до limit книг, в названии которых есть подстрока query
	// (без учета регистра для ASCII), по возрастанию id
	FindByTitle(ctx context.Context, query string, limit int) ([]Book, error)

	// FindByAuthor находит до limit книг по подстроке в поле authors
	FindByAuthor(ctx context.Context, query string, limit int) ([]Book, error)

	// FindByCategory находит до limit книг по подстроке в поле categories
	FindByCategory(ctx context.Context, query string, limit int) ([]Book, error)

	// FindByIDs возвращает книги с указанными id в порядке хранилища
	FindByIDs(ctx context.Context, ids []int) ([]Book, error)

	// Count возвращает количество книг в каталоге
	Count(ctx context.Context) (int, error)

	// Close закрывает соединение с хранилищем
	Close() error
}

// SimilarityTable предвычисленная квадратная матрица сходства книг
type SimilarityTable interface {
	// Size возвращает размерность матрицы
	Size() int

	// Row возвращает строку сходства для книги id
	Row(id int) ([]float64, error)
}
