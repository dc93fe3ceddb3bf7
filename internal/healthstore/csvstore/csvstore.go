// Package csvstore is a health store backed by a directory of daily CSV
// files. Each file is named YYYY-MM-DD.csv after the start date of the
// samples it holds.
package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luki/wristtemp/internal/healthstore"
)

const (
	timeLayout = time.RFC3339
	fileLayout = "2006-01-02"
)

var header = []string{"uuid", "type", "kind", "value", "unit", "start", "end"}

// DiskStore reads and appends samples in dir. Rows are
//
//	uuid,type,kind,value,unit,start,end
type DiskStore struct {
	dir     string
	current *os.File
	writer  *csv.Writer
	curDate string
}

var _ healthstore.Store = (*DiskStore)(nil)

// New returns a store over dir. The directory is created on first Write.
func New(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

// Dir returns the data directory.
func (d *DiskStore) Dir() string { return d.dir }

// IsHealthDataAvailable reports whether the data directory exists.
func (d *DiskStore) IsHealthDataAvailable(_ context.Context) bool {
	info, err := os.Stat(d.dir)
	return err == nil && info.IsDir()
}

// RequestAuthorization grants read access when the directory is readable.
func (d *DiskStore) RequestAuthorization(ctx context.Context, read []healthstore.SampleType) error {
	if !d.IsHealthDataAvailable(ctx) {
		return healthstore.ErrHealthDataUnavailable
	}
	for _, t := range read {
		if _, err := healthstore.LookupType(t.ID); err != nil {
			return err
		}
	}
	f, err := os.Open(d.dir)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", healthstore.ErrAuthorizationDenied, d.dir)
		}
		return err
	}
	return f.Close()
}

// Execute loads every day file oldest first and applies q.
func (d *DiskStore) Execute(ctx context.Context, q healthstore.Query) ([]healthstore.Object, error) {
	if !d.IsHealthDataAvailable(ctx) {
		return nil, healthstore.ErrHealthDataUnavailable
	}
	days, err := ListDays(d.dir)
	if err != nil {
		return nil, err
	}

	var all []healthstore.Object
	for i := len(days) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		objs, err := LoadFile(filepath.Join(d.dir, days[i]+".csv"))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", days[i], err)
		}
		all = append(all, objs...)
	}
	return q.Apply(all), nil
}

// Write appends samples to the file for each sample's start date.
func (d *DiskStore) Write(objects []healthstore.Object) error {
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("cannot create data dir: %w", err)
	}

	for _, o := range objects {
		row, err := encodeRow(o)
		if err != nil {
			return err
		}
		if err := d.rotate(o.StartDate().Format(fileLayout)); err != nil {
			return err
		}
		if err := d.writer.Write(row); err != nil {
			return err
		}
	}
	if d.writer == nil {
		return nil
	}
	d.writer.Flush()
	return d.writer.Error()
}

func (d *DiskStore) rotate(dateStr string) error {
	if d.curDate == dateStr && d.current != nil {
		return nil
	}
	d.Close()

	path := filepath.Join(d.dir, dateStr+".csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	d.current = f
	d.writer = csv.NewWriter(f)
	d.curDate = dateStr

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return d.writer.Write(header)
	}
	return nil
}

// Close flushes and closes the current file.
func (d *DiskStore) Close() {
	if d.writer != nil {
		d.writer.Flush()
	}
	if d.current != nil {
		d.current.Close()
		d.current = nil
	}
}

// ListDays returns available day files (newest first).
func ListDays(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var days []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		day := strings.TrimSuffix(name, ".csv")
		if _, err := time.Parse(fileLayout, day); err != nil {
			continue
		}
		days = append(days, day)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days, nil
}

// LoadFile reads all samples from a CSV file. Malformed rows are skipped.
func LoadFile(path string) ([]healthstore.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var objects []healthstore.Object
	for first := true; ; first = false {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if first && len(row) > 0 && row[0] == "uuid" {
			continue
		}
		o, err := decodeRow(row)
		if err != nil {
			continue
		}
		objects = append(objects, o)
	}
	return objects, nil
}

func encodeRow(o healthstore.Object) ([]string, error) {
	row := []string{
		o.UUID().String(),
		o.SampleType().ID,
		"",
		"",
		"",
		o.StartDate().Format(timeLayout),
		o.EndDate().Format(timeLayout),
	}
	switch s := o.(type) {
	case healthstore.QuantitySample:
		row[2] = string(healthstore.KindQuantity)
		row[3] = strconv.FormatFloat(s.Quantity.Value, 'f', -1, 64)
		row[4] = string(s.Quantity.Unit)
	case healthstore.CategorySample:
		row[2] = string(healthstore.KindCategory)
		row[3] = strconv.Itoa(s.Value)
	default:
		return nil, fmt.Errorf("cannot encode %T", o)
	}
	return row, nil
}

func decodeRow(row []string) (healthstore.Object, error) {
	if len(row) < len(header) {
		return nil, fmt.Errorf("short row: %d fields", len(row))
	}
	id, err := uuid.Parse(row[0])
	if err != nil {
		return nil, err
	}
	st, err := healthstore.LookupType(row[1])
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(timeLayout, row[5])
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(timeLayout, row[6])
	if err != nil {
		return nil, err
	}

	switch healthstore.Kind(row[2]) {
	case healthstore.KindQuantity:
		v, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, err
		}
		unit, err := healthstore.ParseUnit(row[4])
		if err != nil {
			return nil, err
		}
		return healthstore.QuantitySample{
			ID:       id,
			Type:     st,
			Quantity: healthstore.Quantity{Value: v, Unit: unit},
			Start:    start,
			End:      end,
		}, nil
	case healthstore.KindCategory:
		v, err := strconv.Atoi(row[3])
		if err != nil {
			return nil, err
		}
		return healthstore.CategorySample{ID: id, Type: st, Value: v, Start: start, End: end}, nil
	}
	return nil, fmt.Errorf("unknown kind %q", row[2])
}
