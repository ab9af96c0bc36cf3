package application

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"book-recommender/src/domain"
	"book-recommender/src/logging"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// Similar результат поиска похожих книг
type Similar struct {
	// Match книга, найденная по названию (первая по id)
	Match      domain.Book
	Candidates []domain.Candidate
}

// Recommender три независимых способа подбора книг: по названию, автору и жанру
type Recommender struct {
	repo    domain.CatalogRepository
	table   domain.SimilarityTable
	ranks   *lru.Cache[int, []int]
	metrics *Metrics
	logger  zerolog.Logger
}

// NewRecommender создает рекомендатель. table может быть nil: тогда подбор похожих книг недоступен.
// cacheSize задает число строк матрицы, ранжирование которых кэшируется; 0 отключает кэш.
func NewRecommender(repo domain.CatalogRepository, table domain.SimilarityTable, cacheSize int, metrics *Metrics) (*Recommender, error) {
	r := &Recommender{
		repo:    repo,
		table:   table,
		metrics: metrics,
		logger:  logging.With("recommender"),
	}

	if cacheSize > 0 {
		cache, err := lru.New[int, []int](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("не удалось создать кэш сходства: %w", err)
		}
		r.ranks = cache
	}

	return r, nil
}

// HasSimilarity сообщает, загружена ли матрица сходства
func (r *Recommender) HasSimilarity() bool {
	return r.table != nil
}

// SimilarBooks находит книгу по подстроке названия и возвращает до 8 самых похожих на нее книг
// в порядке убывания сходства. Сама книга в результат не попадает.
func (r *Recommender) SimilarBooks(ctx context.Context, title string) (Similar, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Similar{}, nil
	}

	var matches []domain.Book
	err := r.timed("title", func() (err error) {
		matches, err = r.repo.FindByTitle(ctx, title, 1)
		return err
	})
	if err != nil {
		return Similar{}, err
	}
	if len(matches) == 0 {
		return Similar{}, fmt.Errorf("%q: %w", title, domain.ErrBookNotFound)
	}

	result := Similar{Match: matches[0]}
	if r.table == nil {
		return result, domain.ErrSimilarityUnavailable
	}

	ids, err := r.neighbours(result.Match.ID)
	if err != nil {
		return result, err
	}

	var books []domain.Book
	err = r.timed("ids", func() (err error) {
		books, err = r.repo.FindByIDs(ctx, ids)
		return err
	})
	if err != nil {
		return result, err
	}

	byID := make(map[int]domain.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	result.Candidates = make([]domain.Candidate, 0, len(ids))
	for _, id := range ids {
		b, ok := byID[id]
		if !ok || b.Title == result.Match.Title {
			continue
		}
		result.Candidates = append(result.Candidates, b.Candidate())
	}

	r.logger.Debug().
		Int("book_id", result.Match.ID).
		Int("candidates", len(result.Candidates)).
		Msg("подобраны похожие книги")

	return result, nil
}

// ByAuthor возвращает до 8 книг автора в порядке каталога. Пустой запрос не обращается к хранилищу.
func (r *Recommender) ByAuthor(ctx context.Context, author string) ([]domain.Candidate, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return nil, nil
	}

	var books []domain.Book
	err := r.timed("author", func() (err error) {
		books, err = r.repo.FindByAuthor(ctx, author, domain.SectionLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return candidates(books), nil
}

// ByGenre возвращает до 8 книг жанра в порядке каталога. Пустой запрос не обращается к хранилищу.
func (r *Recommender) ByGenre(ctx context.Context, genre string) ([]domain.Candidate, error) {
	genre = strings.TrimSpace(genre)
	if genre == "" {
		return nil, nil
	}

	var books []domain.Book
	err := r.timed("genre", func() (err error) {
		books, err = r.repo.FindByCategory(ctx, genre, domain.SectionLimit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return candidates(books), nil
}

// neighbours возвращает id ближайших соседей книги. Результат из кэша менять нельзя.
func (r *Recommender) neighbours(id int) ([]int, error) {
	if r.ranks != nil {
		if ids, ok := r.ranks.Get(id); ok {
			r.metrics.IncCache(true)
			return ids, nil
		}
		r.metrics.IncCache(false)
	}

	row, err := r.table.Row(id)
	if err != nil {
		return nil, fmt.Errorf("книга %d: %w", id, err)
	}

	ids := RankNeighbours(row, id, domain.SectionLimit)
	if r.ranks != nil {
		r.ranks.Add(id, ids)
	}
	return ids, nil
}

// RankNeighbours сортирует столбцы строки по убыванию сходства (устойчиво: при равенстве
// сохраняется порядок столбцов), исключает self и возвращает первые k id.
func RankNeighbours(row []float64, self, k int) []int {
	type scored struct {
		id    int
		score float64
	}

	pairs := make([]scored, len(row))
	for j, s := range row {
		if math.IsNaN(s) {
			s = math.Inf(-1)
		}
		pairs[j] = scored{id: j, score: s}
	}
	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].score > pairs[b].score
	})

	ids := make([]int, 0, k)
	for _, p := range pairs {
		if len(ids) == k {
			break
		}
		if p.id == self {
			continue
		}
		ids = append(ids, p.id)
	}
	return ids
}

// timed выполняет запрос к каталогу и записывает его длительность
func (r *Recommender) timed(query string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.metrics.ObserveQuery(query, time.Since(start))
	if err != nil {
		return fmt.Errorf("ошибка запроса к каталогу (%s): %w", query, err)
	}
	return nil
}

// candidates проецирует книги в кандидатов для отображения
func candidates(books []domain.Book) []domain.Candidate {
	if len(books) == 0 {
		return nil
	}
	out := make([]domain.Candidate, len(books))
	for i, b := range books {
		out[i] = b.Candidate()
	}
	return out
}

// CatalogSize возвращает количество книг в каталоге
func (r *Recommender) CatalogSize(ctx context.Context) (int, error) {
	var n int
	err := r.timed("count", func() (err error) {
		n, err = r.repo.Count(ctx)
		return err
	})
	return n, err
}
