package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"

	"book-recommender/src/domain"
)

// MockCatalogRepository имитация каталога для тестирования.
// Поиск повторяет контракт SQLite: подстрока без учета регистра ASCII, порядок по id.
type MockCatalogRepository struct {
	Books map[int]domain.Book

	FindByTitleFn    func(ctx context.Context, query string, limit int) ([]domain.Book, error)
	FindByAuthorFn   func(ctx context.Context, query string, limit int) ([]domain.Book, error)
	FindByCategoryFn func(ctx context.Context, query string, limit int) ([]domain.Book, error)
	FindByIDsFn      func(ctx context.Context, ids []int) ([]domain.Book, error)

	mu    sync.Mutex
	calls map[string]int
}

func NewMockCatalogRepository(books ...domain.Book) *MockCatalogRepository {
	m := &MockCatalogRepository{
		Books: make(map[int]domain.Book, len(books)),
		calls: make(map[string]int),
	}
	for _, b := range books {
		m.Books[b.ID] = b
	}
	return m
}

// Calls возвращает количество вызовов метода
func (m *MockCatalogRepository) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *MockCatalogRepository) record(method string) {
	m.mu.Lock()
	m.calls[method]++
	m.mu.Unlock()
}

// sorted возвращает книги по возрастанию id
func (m *MockCatalogRepository) sorted() []domain.Book {
	books := make([]domain.Book, 0, len(m.Books))
	for _, b := range m.Books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books
}

// asciiLower приводит к нижнему регистру только A-Z, как LIKE в SQLite
func asciiLower(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

func (m *MockCatalogRepository) match(field func(domain.Book) string, query string, limit int) []domain.Book {
	query = asciiLower(query)
	var result []domain.Book
	for _, b := range m.sorted() {
		if limit > 0 && len(result) >= limit {
			break
		}
		if strings.Contains(asciiLower(field(b)), query) {
			result = append(result, b)
		}
	}
	return result
}

func (m *MockCatalogRepository) FindByTitle(ctx context.Context, query string, limit int) ([]domain.Book, error) {
	m.record("FindByTitle")
	if m.FindByTitleFn != nil {
		return m.FindByTitleFn(ctx, query, limit)
	}
	return m.match(func(b domain.Book) string { return b.Title }, query, limit), nil
}

func (m *MockCatalogRepository) FindByAuthor(ctx context.Context, query string, limit int) ([]domain.Book, error) {
	m.record("FindByAuthor")
	if m.FindByAuthorFn != nil {
		return m.FindByAuthorFn(ctx, query, limit)
	}
	return m.match(func(b domain.Book) string { return b.Authors }, query, limit), nil
}

func (m *MockCatalogRepository) FindByCategory(ctx context.Context, query string, limit int) ([]domain.Book, error) {
	m.record("FindByCategory")
	if m.FindByCategoryFn != nil {
		return m.FindByCategoryFn(ctx, query, limit)
	}
	return m.match(func(b domain.Book) string { return b.Categories }, query, limit), nil
}

func (m *MockCatalogRepository) FindByIDs(ctx context.Context, ids []int) ([]domain.Book, error) {
	m.record("FindByIDs")
	if m.FindByIDsFn != nil {
		return m.FindByIDsFn(ctx, ids)
	}

	want := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}

	var result []domain.Book
	for _, b := range m.sorted() {
		if _, ok := want[b.ID]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockCatalogRepository) Count(ctx context.Context) (int, error) {
	m.record("Count")
	return len(m.Books), nil
}

func (m *MockCatalogRepository) Close() error {
	return nil
}

var _ domain.CatalogRepository = (*MockCatalogRepository)(nil)
