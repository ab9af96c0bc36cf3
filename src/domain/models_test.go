package domain_test

import (
	"testing"

	"book-recommender/src/domain"

	"github.com/stretchr/testify/assert"
)

func TestBookCandidate(t *testing.T) {
	book := domain.Book{
		ID:         5,
		Title:      "Dune",
		Authors:    "Frank Herbert",
		Categories: "Fiction",
		Thumbnail:  "http://books.example/dune.jpg",
	}

	c := book.Candidate()
	assert.Equal(t, "Dune", c.Title)
	assert.Equal(t, "http://books.example/dune.jpg", c.Thumbnail)
}

func TestRequestIsEmpty(t *testing.T) {
	assert.True(t, domain.Request{}.IsEmpty())
	assert.True(t, domain.Request{Title: "  ", Author: "\t", Genre: "\n"}.IsEmpty())
	assert.False(t, domain.Request{Genre: "Fantasy"}.IsEmpty())

	n := domain.Request{Title: "  Dune ", Author: "Herbert"}.Normalize()
	assert.Equal(t, "Dune", n.Title)
	assert.Equal(t, "Herbert", n.Author)
	assert.Equal(t, "", n.Genre)
}

func TestShownSetWithDoesNotMutate(t *testing.T) {
	empty := domain.NewShownSet()
	assert.False(t, empty.Contains("The Hobbit"))

	first := empty.With("The Hobbit")
	assert.True(t, first.Contains("The Hobbit"))
	assert.False(t, empty.Contains("The Hobbit"), "исходное множество не должно изменяться")
	assert.Equal(t, 0, empty.Len())

	second := first.With("Dune", "The Hobbit")
	assert.Equal(t, 2, second.Len())
	assert.Equal(t, 1, first.Len())
}

func TestShownSetIsCaseSensitive(t *testing.T) {
	set := domain.NewShownSet().With("Dune")

	assert.True(t, set.Contains("Dune"))
	assert.False(t, set.Contains("dune"))
	assert.False(t, set.Contains("Dune "))
}
