package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/ajustes-contables/rt6/internal/model"
)

// Service reads and writes month journals stored as <root>/YYYY/MM/journal.csv.
type Service struct {
	repoRoot string
}

// NewService creates a journal Service.
func NewService(repoRoot string) *Service {
	return &Service{repoRoot: repoRoot}
}

// ReadMonth reads all entries for a given year/month.
func (s *Service) ReadMonth(year, month int) ([]model.JournalEntry, error) {
	path := s.monthPath(year, month)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening journal %s: %w", path, err)
	}
	defer f.Close()

	entries, err := ReadEntries(f)
	if err != nil {
		return nil, fmt.Errorf("reading journal %s: %w", path, err)
	}
	return entries, nil
}

// WriteMonth replaces the journal for a given year/month.
func (s *Service) WriteMonth(year, month int, entries []model.JournalEntry) error {
	path := s.monthPath(year, month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating journal dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteEntries(f, entries); err != nil {
		return fmt.Errorf("writing journal %s: %w", path, err)
	}
	return nil
}

// LoadAll reads every month journal under the repo root in chronological
// month order. Directories that are not YYYY/MM are ignored.
func (s *Service) LoadAll() ([]model.JournalEntry, error) {
	years, err := numericDirs(s.repoRoot, 4)
	if err != nil {
		return nil, err
	}

	var all []model.JournalEntry
	for _, year := range years {
		months, err := numericDirs(filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year)), 2)
		if err != nil {
			return nil, err
		}
		for _, month := range months {
			if month < 1 || month > 12 {
				continue
			}
			entries, err := s.ReadMonth(year, month)
			if err != nil {
				return nil, err
			}
			all = append(all, entries...)
		}
	}
	return all, nil
}

func numericDirs(dir string, width int) ([]int, error) {
	items, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var nums []int
	for _, it := range items {
		if !it.IsDir() || len(it.Name()) != width {
			continue
		}
		n, err := strconv.Atoi(it.Name())
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.repoRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "journal.csv")
}
