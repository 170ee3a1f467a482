package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/Vodeneev/dkprops/internal/pkg/models"
)

const defaultCSVPath = "odds.csv"

// CSVWriter writes run tables to a fixed path. Every run replaces the file,
// so the path always holds the latest snapshot.
type CSVWriter struct {
	path string
}

func NewCSVWriter(path string) *CSVWriter {
	if path == "" {
		path = defaultCSVPath
	}
	return &CSVWriter{path: path}
}

func (w *CSVWriter) Name() string {
	return "csv"
}

func (w *CSVWriter) Path() string {
	return w.path
}

// Write renders the table with its header row. An empty table still writes
// the header so consumers see the schema.
func (w *CSVWriter) Write(table models.Table) error {
	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(models.Columns()); err != nil {
		f.Close()
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(table.Records()); err != nil {
		f.Close()
		return fmt.Errorf("write csv rows: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv file: %w", err)
	}
	return nil
}
