// Package similarity загрузка и чтение предвычисленной матрицы сходства книг.
package similarity

import (
	"fmt"

	"book-recommender/src/domain"

	"gonum.org/v1/gonum/mat"
)

// Table неизменяемая квадратная матрица сходства. Безопасна для конкурентного чтения.
type Table struct {
	m    *mat.Dense
	size int
}

// New создает таблицу из готовой матрицы. Матрица должна быть квадратной и не пустой.
func New(m *mat.Dense) (*Table, error) {
	if m == nil || m.IsEmpty() {
		return nil, fmt.Errorf("матрица сходства пуста")
	}
	r, c := m.Dims()
	if r != c {
		return nil, fmt.Errorf("матрица сходства не квадратная: %dx%d", r, c)
	}
	return &Table{m: m, size: r}, nil
}

// Size возвращает количество строк (и столбцов)
func (t *Table) Size() int {
	return t.size
}

// Row возвращает копию строки id
func (t *Table) Row(id int) ([]float64, error) {
	if id < 0 || id >= t.size {
		return nil, fmt.Errorf("строка %d при размере %d: %w", id, t.size, domain.ErrOutOfBounds)
	}
	return mat.Row(nil, id, t.m), nil
}

var _ domain.SimilarityTable = (*Table)(nil)
