package infrastructure

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"book-recommender/src/domain"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// bookColumns столбцы books; NULL в текстовых полях читается как пустая строка
const bookColumns = `id, COALESCE(title, '') AS title, COALESCE(authors, '') AS authors,
	COALESCE(categories, '') AS categories, COALESCE(thumbnail, '') AS thumbnail`

// SQLiteCatalogRepository каталог книг в SQLite, открытый только на чтение
type SQLiteCatalogRepository struct {
	db *sqlx.DB
}

// NewSQLiteCatalogRepository подключается к базе в режиме только для чтения
// и проверяет, что таблица books доступна
func NewSQLiteCatalogRepository(dbPath string) (*SQLiteCatalogRepository, error) {
	dsn, err := readOnlyDSN(dbPath)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	repo := &SQLiteCatalogRepository{db: db}
	if _, err := repo.Count(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("таблица books недоступна: %w", err)
	}

	return repo, nil
}

// readOnlyDSN строит URI вида file:///abs/path?mode=ro. Путь экранируется,
// поэтому '#', '?' и '%' в именах каталогов не обрезают его.
func readOnlyDSN(dbPath string) (string, error) {
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return "", fmt.Errorf("некорректный путь к базе данных %q: %w", dbPath, err)
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs), RawQuery: "mode=ro"}
	return u.String(), nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы запрос искался как обычная подстрока
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// FindByTitle находит до limit книг по подстроке в названии, по возрастанию id.
// LIKE в SQLite не учитывает регистр только для ASCII.
func (r *SQLiteCatalogRepository) FindByTitle(ctx context.Context, query string, limit int) ([]domain.Book, error) {
	return r.findByColumn(ctx, "title", query, limit)
}

// FindByAuthor находит до limit книг по подстроке в поле authors
func (r *SQLiteCatalogRepository) FindByAuthor(ctx context.Context, query string, limit int) ([]domain.Book, error) {
	return r.findByColumn(ctx, "authors", query, limit)
}

// FindByCategory находит до limit книг по подстроке в поле categories
func (r *SQLiteCatalogRepository) FindByCategory(ctx context.Context, query string, limit int) ([]domain.Book, error) {
	return r.findByColumn(ctx, "categories", query, limit)
}

// findByColumn column подставляется только из кода, не из пользовательского ввода
func (r *SQLiteCatalogRepository) findByColumn(ctx context.Context, column, query string, limit int) ([]domain.Book, error) {
	var books []domain.Book
	err := r.db.SelectContext(ctx, &books,
		fmt.Sprintf(`SELECT %s FROM books WHERE %s LIKE ? ESCAPE '\' ORDER BY id LIMIT ?`, bookColumns, column),
		escapeLike(query), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска по полю %s: %w", column, err)
	}
	return books, nil
}

// FindByIDs возвращает книги с указанными id. Порядок результата не связан с порядком ids.
func (r *SQLiteCatalogRepository) FindByIDs(ctx context.Context, ids []int) ([]domain.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT `+bookColumns+` FROM books WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("не удалось построить запрос по id: %w", err)
	}

	var books []domain.Book
	if err := r.db.SelectContext(ctx, &books, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("ошибка выборки книг по id: %w", err)
	}
	return books, nil
}

// Count возвращает количество книг
func (r *SQLiteCatalogRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM books`); err != nil {
		return 0, fmt.Errorf("ошибка подсчета книг: %w", err)
	}
	return n, nil
}

// Close закрывает соединение с базой данных
func (r *SQLiteCatalogRepository) Close() error {
	return r.db.Close()
}

var _ domain.CatalogRepository = (*SQLiteCatalogRepository)(nil)
