package template

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/itinera/internal/domain"
)

// Source lists and loads templates in the plan's day/slot shape.
type Source interface {
	List() ([]Summary, error)
	Get(ref string) (domain.Template, error)
}

// Summary describes a template without its schedule.
type Summary struct {
	File        string
	NumericID   int
	ID          string
	Name        string
	Region      string
	Description string
	DayCount    int
	ItemCount   int
}

// DirSource reads template files from a directory on every call.
type DirSource struct {
	dir    string
	lookup ItemLookup
	logger *slog.Logger
}

var _ Source = (*DirSource)(nil)

func NewDirSource(dir string, lookup ItemLookup, logger *slog.Logger) *DirSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &DirSource{dir: dir, lookup: lookup, logger: logger}
}

func (s *DirSource) Dir() string { return s.dir }

// List returns every valid template sorted by numeric id, then name.
// Invalid files are skipped and logged. A missing directory is empty.
func (s *DirSource) List() ([]Summary, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}

	var out []Summary
	for _, entry := range entries {
		if entry.IsDir() || !isTemplateFile(entry.Name()) {
			continue
		}
		t, err := s.load(entry.Name())
		if err != nil {
			s.logger.Warn("skipping template", "file", entry.Name(), "error", err)
			continue
		}
		out = append(out, summarize(entry.Name(), t))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NumericID != out[j].NumericID {
			return out[i].NumericID < out[j].NumericID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Get resolves ref by file stem, template id, numeric id, or name
// (case-insensitive).
func (s *DirSource) Get(ref string) (domain.Template, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Template{}, fmt.Errorf("%w: empty reference", domain.ErrTemplateNotFound)
	}

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		if _, err := os.Stat(filepath.Join(s.dir, ref+ext)); err == nil {
			return s.load(ref + ext)
		}
	}

	summaries, err := s.List()
	if err != nil {
		return domain.Template{}, err
	}
	numeric, numErr := strconv.Atoi(ref)
	for _, sum := range summaries {
		if strings.EqualFold(sum.ID, ref) ||
			strings.EqualFold(sum.Name, ref) ||
			(numErr == nil && sum.NumericID != 0 && sum.NumericID == numeric) {
			return s.load(sum.File)
		}
	}
	return domain.Template{}, fmt.Errorf("%w: %q", domain.ErrTemplateNotFound, ref)
}

func (s *DirSource) load(name string) (domain.Template, error) {
	schema, err := LoadSchema(filepath.Join(s.dir, name))
	if err != nil {
		return domain.Template{}, err
	}
	if errs := ValidateSchema(schema); len(errs) > 0 {
		return domain.Template{}, fmt.Errorf("invalid template %s: %w", name, errors.Join(errs...))
	}
	t, warnings := ToDomain(schema, s.lookup)
	for _, w := range warnings {
		s.logger.Warn("template entry dropped", "template", schema.ID, "detail", w)
	}
	return t, nil
}

func summarize(file string, t domain.Template) Summary {
	count := 0
	for _, day := range t.Schedule {
		count += day.Count()
	}
	return Summary{
		File:        file,
		NumericID:   t.NumericID,
		ID:          t.ID,
		Name:        t.Name,
		Region:      t.Region,
		Description: t.Description,
		DayCount:    t.DayCount,
		ItemCount:   count,
	}
}
