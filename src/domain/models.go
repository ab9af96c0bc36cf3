package domain

import "strings"

const (
	// SectionLimit максимальное количество рекомендаций в одной секции
	SectionLimit = 8
	// GridColumns количество колонок в сетке отображения
	GridColumns = 4
	// GridRows количество строк в сетке отображения
	GridRows = 2
)

// Book представляет книгу из каталога. Строки каталога неизменяемы.
type Book struct {
	ID         int    `db:"id" json:"id"`
	Title      string `db:"title" json:"title"`
	Authors    string `db:"authors" json:"authors"`
	Categories string `db:"categories" json:"categories"`
	Thumbnail  string `db:"thumbnail" json:"thumbnail"`
}

// Candidate возвращает проекцию книги для отображения
func (b Book) Candidate() Candidate {
	return Candidate{Title: b.Title, Thumbnail: b.Thumbnail}
}

// Candidate пара (название, обложка), пригодная для отображения.
// Два кандидата считаются дубликатами только при точном совпадении названий.
type Candidate struct {
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
}

// SectionKind вид секции рекомендаций
type SectionKind string

const (
	SectionSimilar SectionKind = "similar"
	SectionAuthor  SectionKind = "author"
	SectionGenre   SectionKind = "genre"
)

// Section одна подписанная группа рекомендаций
type Section struct {
	Kind       SectionKind   `json:"kind"`
	Label      string        `json:"label"`
	Candidates []Candidate   `json:"candidates"`
	Grid       [][]Candidate `json:"grid"`
}

// Request запрос пользователя: три необязательных поля
type Request struct {
	Title  string `json:"title" validate:"required_without_all=Author Genre,max=200"`
	Author string `json:"author" validate:"required_without_all=Title Genre,max=200"`
	Genre  string `json:"genre" validate:"required_without_all=Title Author,max=200"`
}

// Normalize возвращает копию запроса без пробелов по краям полей
func (r Request) Normalize() Request {
	return Request{
		Title:  strings.TrimSpace(r.Title),
		Author: strings.TrimSpace(r.Author),
		Genre:  strings.TrimSpace(r.Genre),
	}
}

// IsEmpty сообщает, что ни одно поле запроса не заполнено
func (r Request) IsEmpty() bool {
	n := r.Normalize()
	return n.Title == "" && n.Author == "" && n.Genre == ""
}

// Response ответ на запрос: от нуля до трех секций и предупреждения
type Response struct {
	Sections []Section `json:"sections"`
	Warnings []string  `json:"warnings,omitempty"`
}

// ShownSet множество уже показанных в рамках одного запроса названий.
// Значение не изменяется после создания: With возвращает новое множество.
type ShownSet struct {
	titles map[string]struct{}
}

// NewShownSet создает пустое множество
func NewShownSet() ShownSet {
	return ShownSet{}
}

// Contains проверяет, было ли название уже показано
func (s ShownSet) Contains(title string) bool {
	_, ok := s.titles[title]
	return ok
}

// Len возвращает количество названий
func (s ShownSet) Len() int {
	return len(s.titles)
}

// With возвращает новое множество, дополненное названиями
func (s ShownSet) With(titles ...string) ShownSet {
	next := make(map[string]struct{}, len(s.titles)+len(titles))
	for t := range s.titles {
		next[t] = struct{}{}
	}
	for _, t := range titles {
		next[t] = struct{}{}
	}
	return ShownSet{titles: next}
}
