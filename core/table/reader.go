package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Supported reports whether the file name carries a decodable extension.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".xlsx":
		return true
	default:
		return false
	}
}

// Read decodes a byte stream into a Table based on the file extension.
// Every cell is read as text.
func Read(name string, content []byte) (*Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return ReadCSV(content)
	case ".xlsx":
		return ReadXLSX(content)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(name))
	}
}

// ReadHeader decodes only the column names of a byte stream.
func ReadHeader(name string, content []byte) ([]string, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		r := newCSVReader(content)
		header, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("read csv header: %w", err)
		}
		return header, nil
	case ".xlsx":
		t, err := ReadXLSX(content)
		if err != nil {
			return nil, err
		}
		return t.Columns, nil
	default:
		return nil, fmt.Errorf("unsupported file format: %s", filepath.Ext(name))
	}
}

func newCSVReader(content []byte) *csv.Reader {
	content = bytes.TrimPrefix(content, utf8BOM)
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r
}

// ReadCSV decodes a CSV byte stream. The first record is the header; data
// rows shorter than the header are padded with absent cells and longer rows
// are truncated.
func ReadCSV(content []byte) (*Table, error) {
	r := newCSVReader(content)
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read csv: file has no header row")
	}
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	t := New(header)
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		cells := make([]Cell, len(record))
		for i, v := range record {
			cells[i] = String(v)
		}
		t.AppendRow(cells)
	}
	return t, nil
}

// ReadXLSX decodes the first sheet of an XLSX byte stream.
func ReadXLSX(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("read xlsx: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read xlsx: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read xlsx: sheet %q has no header row", sheets[0])
	}
	t := New(rows[0])
	for _, row := range rows[1:] {
		cells := make([]Cell, len(row))
		for i, v := range row {
			cells[i] = String(v)
		}
		t.AppendRow(cells)
	}
	return t, nil
}
