package mocks

import (
	"fmt"

	"book-recommender/src/domain"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// CreateSQLiteCatalog создает файл базы с таблицей books и заполняет ее.
// Рабочий код открывает каталог только на чтение, поэтому база для тестов готовится здесь.
func CreateSQLiteCatalog(dbPath string, books []domain.Book) error {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("не удалось создать базу данных: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS books (
		id INTEGER PRIMARY KEY,
		title TEXT,
		authors TEXT,
		categories TEXT,
		thumbnail TEXT
	)`)
	if err != nil {
		return fmt.Errorf("ошибка при создании таблицы: %w", err)
	}

	tx, err := db.Beginx()
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	defer tx.Rollback()

	for _, b := range books {
		_, err := tx.NamedExec(
			`INSERT INTO books (id, title, authors, categories, thumbnail)
			 VALUES (:id, :title, :authors, :categories, :thumbnail)`, b)
		if err != nil {
			return fmt.Errorf("не удалось вставить книгу %d: %w", b.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось зафиксировать транзакцию: %w", err)
	}
	return nil
}
