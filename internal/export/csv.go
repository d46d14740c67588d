// Package export writes tracker reports to local files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/tracker/internal/service"
)

// WriteCSV writes one table as CSV with its header row.
func WriteCSV(w io.Writer, table service.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(table.Header); err != nil {
		return err
	}

	record := make([]string, len(table.Header))
	for _, row := range table.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = fmt.Sprint(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// CSVDir writes every report table to dir as <name>.csv and returns the paths written.
// Existing files are replaced.
func CSVDir(dir string, report *service.Report) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}

	tables := report.Tables()
	paths := make([]string, 0, len(tables))
	for _, table := range tables {
		path := filepath.Join(dir, table.Name+".csv")
		if err := writeCSVFile(path, table); err != nil {
			return paths, fmt.Errorf("failed to export %s: %w", table.Name, err)
		}
		slog.Debug("exported table", "path", path, "rows", len(table.Rows))
		paths = append(paths, path)
	}

	return paths, nil
}

func writeCSVFile(path string, table service.Table) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(filepath.Clean(tmpPath))
	if err != nil {
		return err
	}

	if err := WriteCSV(f, table); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	return os.Rename(tmpPath, path)
}
