package application

import "book-recommender/src/domain"

// Arrange раскладывает кандидатов в сетку из двух строк по четыре.
// Раскладка останавливается, когда кандидаты заканчиваются; пустые ячейки не добавляются.
func Arrange(candidates []domain.Candidate) [][]domain.Candidate {
	var grid [][]domain.Candidate
	for row := 0; row < domain.GridRows; row++ {
		start := row * domain.GridColumns
		if start >= len(candidates) {
			break
		}
		end := min(start+domain.GridColumns, len(candidates))

		cells := make([]domain.Candidate, end-start)
		copy(cells, candidates[start:end])
		grid = append(grid, cells)
	}
	return grid
}

// PresentSection отбрасывает уже показанные названия и раскладывает остальных кандидатов в сетку.
// Возвращает секцию, новое множество показанных названий и признак того, что секцию нужно показать.
// Пустая секция (до или после фильтрации) пропускается, shown возвращается без изменений.
func PresentSection(kind domain.SectionKind, label string, candidates []domain.Candidate, shown domain.ShownSet) (domain.Section, domain.ShownSet, bool) {
	if len(candidates) == 0 {
		return domain.Section{}, shown, false
	}

	filtered := make([]domain.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !shown.Contains(c.Title) {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return domain.Section{}, shown, false
	}

	grid := Arrange(filtered)

	var placed []domain.Candidate
	for _, row := range grid {
		placed = append(placed, row...)
	}
	titles := make([]string, len(placed))
	for i, c := range placed {
		titles[i] = c.Title
	}

	section := domain.Section{
		Kind:       kind,
		Label:      label,
		Candidates: placed,
		Grid:       grid,
	}
	return section, shown.With(titles...), true
}
