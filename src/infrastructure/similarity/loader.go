package similarity

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// DefaultEntry имя файла матрицы внутри архива
const DefaultEntry = "similarity.npy"

// Load загружает матрицу из .zip архива (файл entry внутри) или из .npy файла.
// Из архива данные читаются потоком, на диск ничего не извлекается.
func Load(path, entry string) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return loadArchive(path, entry)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть файл матрицы: %w", err)
	}
	defer f.Close()

	return decode(f)
}

// loadArchive читает entry из zip архива
func loadArchive(path, entry string) (*Table, error) {
	if entry == "" {
		entry = DefaultEntry
	}

	archive, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть архив %s: %w", path, err)
	}
	defer archive.Close()

	for _, file := range archive.File {
		if file.Name != entry {
			continue
		}

		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("не удалось открыть %s в архиве: %w", entry, err)
		}
		defer rc.Close()

		return decode(rc)
	}

	return nil, fmt.Errorf("%s не найден в %s", entry, path)
}

// decode разбирает NumPy массив в матрицу
func decode(r io.Reader) (*Table, error) {
	var m mat.Dense
	if err := npyio.Read(r, &m); err != nil {
		return nil, fmt.Errorf("ошибка чтения npy: %w", err)
	}
	return New(&m)
}
