// Package storage реализует хранилище подписок в CSV-файле.
// Файл читается и перезаписывается целиком, блокировок нет: одновременная
// работа двух процессов с одним файлом не поддерживается.
package storage

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/magabrotheeeer/subtrack/internal/lib/month"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

var (
	// ErrBadHeader первая строка файла не совпадает с ожидаемым заголовком.
	ErrBadHeader = errors.New("unexpected header")
	// ErrDateOutOfRange дату нельзя записать в формате YYYY-MM-DD.
	ErrDateOutOfRange = errors.New("date does not fit YYYY-MM-DD")
)

// Storage хранит путь к CSV-файлу с подписками.
type Storage struct {
	path string
}

// New создаёт хранилище поверх файла path. Сам файл создаётся при первой записи.
func New(path string) *Storage {
	return &Storage{path: path}
}

// Path возвращает путь к файлу хранилища.
func (s *Storage) Path() string {
	return s.path
}

// LoadAll читает все записи. Отсутствующий файл означает пустой набор.
func (s *Storage) LoadAll(ctx context.Context) ([]models.Record, error) {
	const op = "storage.LoadAll"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = f.Close()
	}()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(models.Header)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return []models.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !slices.Equal(header, models.Header) {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrBadHeader, header)
	}

	records := []models.Record{}
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rec, err := parseRow(row)
		if err != nil {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("%s: line %d: %w", op, line, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Append дописывает одну запись. Заголовок пишется, только если файла ещё не было или он пуст.
func (s *Storage) Append(ctx context.Context, rec models.Record) error {
	const op = "storage.Append"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	row, err := formatRow(rec)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// пустой файл LoadAll читает как пустой набор, значит заголовка в нём ещё нет
	fi, err := os.Stat(s.path)
	hasHeader := err == nil && fi.Size() > 0

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	w := csv.NewWriter(f)
	if !hasHeader {
		if err := w.Write(models.Header); err != nil {
			_ = f.Close()
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	if err := w.Write(row); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SaveAll перезаписывает файл целиком: заголовок и все записи в переданном порядке.
func (s *Storage) SaveAll(ctx context.Context, records []models.Record) error {
	const op = "storage.SaveAll"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, models.Header)
	for _, rec := range records {
		row, err := formatRow(rec)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		rows = append(rows, row)
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	// WriteAll сам вызывает Flush
	if err := csv.NewWriter(f).WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func formatRow(rec models.Record) ([]string, error) {
	if !month.Representable(rec.PurchaseDate) || !month.Representable(rec.RenewalDate) {
		return nil, fmt.Errorf("%w: customer %q", ErrDateOutOfRange, rec.CustomerName)
	}
	return []string{
		rec.CustomerName,
		rec.PurchaseDate.Format(month.DateLayout),
		strconv.Itoa(rec.Months),
		rec.RenewalDate.Format(month.DateLayout),
		rec.Email,
	}, nil
}

func parseRow(row []string) (models.Record, error) {
	purchase, err := time.Parse(month.DateLayout, row[1])
	if err != nil {
		return models.Record{}, fmt.Errorf("field %q: %w", models.ColumnPurchaseDate, err)
	}
	months, err := strconv.Atoi(row[2])
	if err != nil {
		return models.Record{}, fmt.Errorf("field %q: %w", models.ColumnMonths, err)
	}
	renewal, err := time.Parse(month.DateLayout, row[3])
	if err != nil {
		return models.Record{}, fmt.Errorf("field %q: %w", models.ColumnRenewalDate, err)
	}
	return models.Record{
		CustomerName: row[0],
		PurchaseDate: purchase,
		Months:       months,
		RenewalDate:  renewal,
		Email:        row[4],
	}, nil
}
