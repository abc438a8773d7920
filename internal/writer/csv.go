package writer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rickgao/grandexchange-data/internal/model"
)

// FileDateLayout is the date part of CSV file names (MM-DD-YYYY).
const FileDateLayout = "01-02-2006"

// Record kinds, used as CSV file name prefixes.
const (
	KindItems  = "items"
	KindPrices = "prices"
)

var (
	itemHeader  = []string{"item_id", "icon", "item_type", "name", "description", "is_members"}
	priceHeader = []string{"item_id", "date", "price", "trend", "change_today"}
)

// CSVSink appends record sets to per-day CSV files in one directory.
type CSVSink struct {
	dir  string
	date string
}

// NewCSVSink creates a sink whose file names carry day.
func NewCSVSink(dir string, day time.Time) *CSVSink {
	return &CSVSink{
		dir:  dir,
		date: day.Format(FileDateLayout),
	}
}

// Path returns the file path for kind.
func (s *CSVSink) Path(kind string) string {
	return filepath.Join(s.dir, kind+"_"+s.date+".csv")
}

// AppendItems appends items to the items file.
func (s *CSVSink) AppendItems(items []model.Item) error {
	rows := make([][]string, len(items))
	for i, it := range items {
		rows[i] = []string{
			strconv.FormatInt(it.ItemID, 10),
			it.Icon,
			it.Type,
			it.Name,
			it.Description,
			formatBool(it.IsMembers),
		}
	}
	return s.appendRows(KindItems, itemHeader, rows)
}

// AppendPrices appends price snapshots to the prices file.
func (s *CSVSink) AppendPrices(prices []model.PriceSnapshot) error {
	rows := make([][]string, len(prices))
	for i, p := range prices {
		rows[i] = []string{
			strconv.FormatInt(p.ItemID, 10),
			p.DateString(),
			strconv.FormatInt(p.Price, 10),
			p.Trend,
			strconv.FormatInt(p.ChangeToday, 10),
		}
	}
	return s.appendRows(KindPrices, priceHeader, rows)
}

// appendRows writes header only when this call creates the file.
func (s *CSVSink) appendRows(kind string, header []string, rows [][]string) error {
	path := s.Path(kind)

	writeHeader := true
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		writeHeader = false
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(header); err != nil {
			f.Close()
			return fmt.Errorf("write header %s: %w", path, err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		f.Close()
		return fmt.Errorf("write rows %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// formatBool matches the True/False spelling of the historical files.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
