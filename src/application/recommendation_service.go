package application

import (
	"context"
	"errors"
	"fmt"

	"book-recommender/src/domain"
	"book-recommender/src/logging"

	"github.com/rs/zerolog"
)

// Тексты, которые видит пользователь
const (
	EmptyRequestWarning   = "Please enter at least one of Book, Author, or Genre to get recommendations."
	SimilarSectionLabel   = "Book-Based Recommendations"
	notFoundWarning       = "No book found for '%s'. Please check the spelling."
	outOfBoundsWarning    = "Similarity data does not cover '%s'."
	unavailableWarning    = "Similar-book recommendations are unavailable right now."
	authorSectionLabelFmt = "Books by %s"
	genreSectionLabelFmt  = "Genre: %s"
)

// Service реализация сервиса рекомендаций
type Service struct {
	rec     *Recommender
	metrics *Metrics
	logger  zerolog.Logger
}

// NewService создает новый экземпляр сервиса рекомендаций
func NewService(rec *Recommender, metrics *Metrics) *Service {
	return &Service{
		rec:     rec,
		metrics: metrics,
		logger:  logging.With("service"),
	}
}

// Recommend обрабатывает секции в фиксированном порядке: похожие книги, автор, жанр.
// Названия, показанные в предыдущей секции, в следующих не повторяются.
// Ошибки отдельной секции превращаются в предупреждения; ошибка хранилища прерывает запрос.
func (s *Service) Recommend(ctx context.Context, req domain.Request) (*domain.Response, error) {
	req = req.Normalize()
	resp := &domain.Response{Sections: []domain.Section{}}

	if req.IsEmpty() {
		s.metrics.IncRequest("empty")
		resp.Warnings = append(resp.Warnings, EmptyRequestWarning)
		return resp, nil
	}

	shown := domain.NewShownSet()

	if req.Title != "" {
		similar, err := s.rec.SimilarBooks(ctx, req.Title)
		if err != nil {
			if err = s.sectionError(resp, req.Title, similar, err); err != nil {
				s.metrics.IncRequest("error")
				return nil, fmt.Errorf("ошибка подбора похожих книг: %w", err)
			}
		} else {
			shown = s.present(resp, domain.SectionSimilar, SimilarSectionLabel, similar.Candidates, shown)
		}
	}

	if req.Author != "" {
		recs, err := s.rec.ByAuthor(ctx, req.Author)
		if err != nil {
			s.metrics.IncRequest("error")
			return nil, fmt.Errorf("ошибка подбора по автору: %w", err)
		}
		shown = s.present(resp, domain.SectionAuthor, fmt.Sprintf(authorSectionLabelFmt, req.Author), recs, shown)
	}

	if req.Genre != "" {
		recs, err := s.rec.ByGenre(ctx, req.Genre)
		if err != nil {
			s.metrics.IncRequest("error")
			return nil, fmt.Errorf("ошибка подбора по жанру: %w", err)
		}
		s.present(resp, domain.SectionGenre, fmt.Sprintf(genreSectionLabelFmt, req.Genre), recs, shown)
	}

	s.metrics.IncRequest("ok")
	s.logger.Debug().
		Int("sections", len(resp.Sections)).
		Int("warnings", len(resp.Warnings)).
		Msg("запрос обработан")

	return resp, nil
}

// sectionError переводит восстановимые ошибки секции похожих книг в предупреждения.
// Возвращает ошибку, только если запрос нужно прервать.
func (s *Service) sectionError(resp *domain.Response, query string, similar Similar, err error) error {
	kind := string(domain.SectionSimilar)

	switch {
	case errors.Is(err, domain.ErrBookNotFound):
		s.metrics.IncSection(kind, "not_found")
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(notFoundWarning, query))
	case errors.Is(err, domain.ErrOutOfBounds):
		s.metrics.IncSection(kind, "out_of_bounds")
		s.logger.Warn().Err(err).Int("book_id", similar.Match.ID).Msg("id книги вне матрицы сходства")
		resp.Warnings = append(resp.Warnings, fmt.Sprintf(outOfBoundsWarning, similar.Match.Title))
	case errors.Is(err, domain.ErrSimilarityUnavailable):
		s.metrics.IncSection(kind, "unavailable")
		resp.Warnings = append(resp.Warnings, unavailableWarning)
	default:
		return err
	}
	return nil
}

// present добавляет секцию в ответ, если после фильтрации в ней что-то осталось
func (s *Service) present(resp *domain.Response, kind domain.SectionKind, label string, recs []domain.Candidate, shown domain.ShownSet) domain.ShownSet {
	section, next, ok := PresentSection(kind, label, recs, shown)
	switch {
	case ok:
		s.metrics.IncSection(string(kind), "rendered")
		resp.Sections = append(resp.Sections, section)
	case len(recs) == 0:
		s.metrics.IncSection(string(kind), "empty")
	default:
		s.metrics.IncSection(string(kind), "deduplicated")
	}
	return next
}

// Status возвращает размер каталога и признак наличия матрицы сходства
func (s *Service) Status(ctx context.Context) (Status, error) {
	n, err := s.rec.CatalogSize(ctx)
	if err != nil {
		return Status{}, err
	}
	return Status{Books: n, Similarity: s.rec.HasSimilarity()}, nil
}

var _ RecommendationService = (*Service)(nil)
