// Package csvfile reads raw air-quality readings from a CSV file.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/samber/lo"

	"github.com/Moustapha00864/Kaikai-dashbaord-app/internal/domain"
)

// Source reads the whole file on every Extract call.
// It implements pipeline.Extractor.
type Source struct {
	path   string
	logger *slog.Logger
}

// NewSource creates a Source for the CSV file at path.
func NewSource(path string, logger *slog.Logger) *Source {
	return &Source{path: path, logger: logger}
}

// Path returns the file the source reads.
func (s *Source) Path() string {
	return s.path
}

// Extract opens the file and parses every row.
func (s *Source) Extract(ctx context.Context) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	s.logger.Debug("csv extracted", "path", s.path, "rows", len(records))
	return records, nil
}

// ReadRecords parses CSV data with a header row. Every column is read as text;
// numeric parsing happens in the preparation stage. Columns other than
// domain.RequiredColumns are ignored. A header with no data rows yields no
// records and no error.
func ReadRecords(r io.Reader) ([]domain.RawRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	rows := csv.NewReader(bytes.NewReader(data))
	header, err := rows.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v (no header row)", domain.ErrMissingColumn, domain.RequiredColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	if _, err := rows.Read(); errors.Is(err, io.EOF) {
		return []domain.RawRecord{}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	cols := make(map[string][]string, len(domain.RequiredColumns))
	for _, name := range domain.RequiredColumns {
		cols[name] = df.Col(name).Records()
	}

	n := df.Nrow()
	records := make([]domain.RawRecord, n)
	for i := 0; i < n; i++ {
		records[i] = domain.RawRecord{
			Month:   cols["month"][i],
			Day:     cols["day"][i],
			Hour:    cols["hour"][i],
			PM25:    cols["PM2.5"][i],
			PM10:    cols["PM10"][i],
			CO:      cols["CO"][i],
			O3:      cols["O3"][i],
			Temp:    cols["TEMP"][i],
			Pres:    cols["PRES"][i],
			Dewp:    cols["DEWP"][i],
			Station: cols["station"][i],
		}
	}
	return records, nil
}

// checkHeader reports required columns that are absent or repeated. The
// dataframe renames repeated names, so duplicates must be caught here.
func checkHeader(header []string) error {
	if missing := lo.Without(domain.RequiredColumns, header...); len(missing) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrMissingColumn, missing)
	}
	counts := lo.CountValues(header)
	dups := lo.Filter(domain.RequiredColumns, func(name string, _ int) bool {
		return counts[name] > 1
	})
	if len(dups) > 0 {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateColumn, dups)
	}
	return nil
}
