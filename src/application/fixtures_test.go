package application_test

import (
	"fmt"
	"math"
	"testing"

	"book-recommender/src/application"
	"book-recommender/src/domain"
	"book-recommender/src/infrastructure/similarity"
	"book-recommender/src/mocks"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// matrixSize книги с id 0..matrixSize-1 покрыты матрицей сходства
const matrixSize = 12

// bandMatrix сходство убывает с расстоянием между id: 1 - 0.05*|i-j|
func bandMatrix(n int) *mat.Dense {
	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			m.Set(i, j, 1.0-0.05*math.Abs(float64(i-j)))
		}
	}
	return m
}

// library каталог: id 0..11 покрыты матрицей, Толкин и книги вне матрицы начинаются с 20
func library() []domain.Book {
	var books []domain.Book
	for i := 0; i < matrixSize; i++ {
		books = append(books, domain.Book{
			ID:         i,
			Title:      fmt.Sprintf("Book %02d", i),
			Authors:    fmt.Sprintf("Author %02d", i),
			Categories: "Fiction",
			Thumbnail:  fmt.Sprintf("http://img/%d", i),
		})
	}
	books[5].Title = "Dune"
	books[5].Authors = "Frank Herbert"
	books[5].Categories = "Science Fiction"
	books[4].Title = "The Hobbit"
	books[4].Authors = "J.R.R. Tolkien"
	books[4].Categories = "Fantasy"

	for i := 0; i < 10; i++ {
		books = append(books, domain.Book{
			ID:         20 + i,
			Title:      fmt.Sprintf("Tolkien Volume %d", i),
			Authors:    "J.R.R. Tolkien",
			Categories: "Fantasy",
			Thumbnail:  fmt.Sprintf("http://img/%d", 20+i),
		})
	}
	books = append(books, domain.Book{
		ID:         40,
		Title:      "The Silmarillion",
		Authors:    "Christopher Tolkien",
		Categories: "Fantasy",
		Thumbnail:  "http://img/40",
	})
	return books
}

func newTable(t *testing.T) *similarity.Table {
	t.Helper()
	table, err := similarity.New(bandMatrix(matrixSize))
	require.NoError(t, err)
	return table
}

// newRecommender собирает рекомендатель поверх мока; table может быть nil
func newRecommender(t *testing.T, repo domain.CatalogRepository, table domain.SimilarityTable) (*application.Recommender, *application.Metrics) {
	t.Helper()
	metrics := application.NewMetrics()
	rec, err := application.NewRecommender(repo, table, 16, metrics)
	require.NoError(t, err)
	return rec, metrics
}

func newService(t *testing.T, repo *mocks.MockCatalogRepository, withTable bool) (*application.Service, *application.Metrics) {
	t.Helper()
	var table domain.SimilarityTable
	if withTable {
		table = newTable(t)
	}
	rec, metrics := newRecommender(t, repo, table)
	return application.NewService(rec, metrics), metrics
}

func candidateTitles(cs []domain.Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Title
	}
	return out
}
