package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"uiforge/pkg/models"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// Exporter writes localization entries in one file format. locale is only
// meaningful to per-locale formats.
type Exporter interface {
	Export(w io.Writer, entries []models.LocalizationEntry, locale string) error
}

var registry = map[string]Exporter{
	"json": JSON{},
	"csv":  CSV{},
}

func Lookup(format string) (Exporter, error) {
	ex, ok := registry[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return ex, nil
}

func Formats() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Source lists the localization table.
type Source interface {
	ListLocalizations(ctx context.Context) ([]models.LocalizationEntry, error)
}

// WriteFile exports the whole table to path, creating parent directories.
func WriteFile(ctx context.Context, src Source, format, locale, path string) (int, error) {
	ex, err := Lookup(format)
	if err != nil {
		return 0, err
	}
	entries, err := src.ListLocalizations(ctx)
	if err != nil {
		return 0, fmt.Errorf("list localizations: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	if err := ex.Export(f, entries, locale); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// JSON writes a flat key to text object for one locale, keys in table order.
type JSON struct{}

func (JSON) Export(w io.Writer, entries []models.LocalizationEntry, locale string) error {
	if !models.IsLocale(locale) {
		return fmt.Errorf("export json: unsupported locale %q", locale)
	}

	if _, err := io.WriteString(w, "{\n"); err != nil {
		return err
	}
	for i, e := range entries {
		if _, err := io.WriteString(w, "  "); err != nil {
			return err
		}
		key, err := marshal(e.Key)
		if err != nil {
			return err
		}
		text, err := marshal(e.Text(locale))
		if err != nil {
			return err
		}
		sep := ",\n"
		if i == len(entries)-1 {
			sep = "\n"
		}
		if _, err := fmt.Fprintf(w, "%s: %s%s", key, text, sep); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}

func marshal(s string) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", err
	}
	return strings.TrimSuffix(sb.String(), "\n"), nil
}

// CSV writes every locale column, one row per entry.
type CSV struct{}

func (CSV) Export(w io.Writer, entries []models.LocalizationEntry, _ string) error {
	cw := csv.NewWriter(w)
	header := append([]string{"id", "key"}, models.Locales...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range entries {
		row := []string{e.ID, e.Key}
		for _, locale := range models.Locales {
			row = append(row, e.Text(locale))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
