package csv

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

type Record interface {
	Date() string
	Merchant() string
	RawAmount() string
}

type FilterFunc[T Record] func(T) bool

// Row is one line of the exported file. Valor keeps the statement's own
// formatting ("-1.234,56").
type Row struct {
	Data            string `csv:"data"`
	Estabelecimento string `csv:"estabelecimento"`
	Valor           string `csv:"valor"`
}

func Rows[T Record](records []T, filter FilterFunc[T]) []Row {
	rows := make([]Row, 0, len(records))
	for _, r := range records {
		if filter == nil || filter(r) {
			rows = append(rows, Row{
				Data:            r.Date(),
				Estabelecimento: r.Merchant(),
				Valor:           r.RawAmount(),
			})
		}
	}
	return rows
}

func Create[T Record](records []T, filter FilterFunc[T]) ([]byte, error) {
	rows := Rows(records, filter)
	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("error encoding csv: %w", err)
	}
	return out, nil
}

func WriteFile[T Record](path string, records []T, filter FilterFunc[T]) error {
	out, err := Create(records, filter)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("error writing csv: %w", err)
	}
	return nil
}

func ReadFile(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading csv: %w", err)
	}
	var rows []Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("error decoding csv: %w", err)
	}
	return rows, nil
}
