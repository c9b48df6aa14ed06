package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// SaveTempFile : копирует загруженный файл во временный каталог, сохраняя расширение.
// Удаление файла остаётся за вызывающим.
func SaveTempFile(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))

	file, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("[util] не удалось создать временный файл: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, src); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("[util] не удалось записать временный файл: %w", err)
	}

	return file.Name(), nil
}
