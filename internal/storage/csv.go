package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"aerotags/internal/model"
)

var csvHeader = []string{
	"Contract Address",
	"Public Name Tag",
	"Project Name",
	"UI/Website Link",
	"Public Note",
}

// CsvStorage writes contract tags to a CSV file, one header row per file.
type CsvStorage struct {
	path string

	mu          sync.Mutex
	wroteHeader bool
}

func NewCsvStorage(path string) *CsvStorage {
	return &CsvStorage{path: path}
}

// PutTagBatch appends a batch of tags, writing the header only when the
// file is still empty.
func (s *CsvStorage) PutTagBatch(tags []model.ContractTag) error {
	if len(tags) == 0 {
		return nil
	}

	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if !s.wroteHeader {
		info, err := file.Stat()
		if err != nil {
			return fmt.Errorf("stat output file: %w", err)
		}
		// A leftover file from an earlier run already carries its header.
		if info.Size() == 0 {
			if err := writer.Write(csvHeader); err != nil {
				return fmt.Errorf("write header: %w", err)
			}
		}
		s.wroteHeader = true
	}
	for _, tag := range tags {
		record := []string{
			tag.ContractAddress,
			tag.PublicNameTag,
			tag.ProjectName,
			tag.Website,
			tag.PublicNote,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write tag record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
