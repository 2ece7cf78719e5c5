// Package services содержит бизнес-логику учёта подписок: добавление, продление,
// отмену и выборки по дате продления.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/subtrack/internal/lib/month"
	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
	"github.com/magabrotheeeer/subtrack/internal/lib/validate"
	"github.com/magabrotheeeer/subtrack/internal/metrics"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

var (
	// ErrNotFound подписка с таким именем клиента не найдена.
	ErrNotFound = errors.New("subscription not found")
	// ErrInvalidRecord данные новой подписки не прошли проверку.
	ErrInvalidRecord = errors.New("invalid subscription")
)

// Operation names, used as metric labels.
const (
	OpAdd      = "add"
	OpRenew    = "renew"
	OpCancel   = "cancel"
	OpList     = "list"
	OpExpiring = "expiring"
	OpExpired  = "expired"
)

// RecordRepository определяет методы для работы с хранилищем подписок.
type RecordRepository interface {
	// LoadAll возвращает все записи в порядке хранения.
	LoadAll(ctx context.Context) ([]models.Record, error)
	// Append дописывает одну запись.
	Append(ctx context.Context, rec models.Record) error
	// SaveAll перезаписывает хранилище целиком.
	SaveAll(ctx context.Context, records []models.Record) error
}

// Metrics принимает наблюдения об операциях.
type Metrics interface {
	ObserveOperation(operation, status string)
	SetRecords(n int)
}

// SubscriptionService реализует операции над записями о подписках.
type SubscriptionService struct {
	repo    RecordRepository
	metrics Metrics
	audit   *slog.Logger
	log     *slog.Logger
	window  time.Duration
	now     func() time.Time
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
// window задаёт горизонт выборки "скоро истекают".
func NewSubscriptionService(repo RecordRepository, m Metrics, audit, log *slog.Logger, window time.Duration) *SubscriptionService {
	return &SubscriptionService{
		repo:    repo,
		metrics: m,
		audit:   audit,
		log:     log,
		window:  window,
		now:     time.Now,
	}
}

// WithClock подменяет источник текущего времени.
func (s *SubscriptionService) WithClock(now func() time.Time) *SubscriptionService {
	s.now = now
	return s
}

// Today возвращает текущую календарную дату.
func (s *SubscriptionService) Today() time.Time {
	return month.Today(s.now())
}

// Add проверяет ввод, вычисляет дату продления и дописывает запись в хранилище.
func (s *SubscriptionService) Add(ctx context.Context, req models.DummyRecord) (models.Record, error) {
	const op = "subscription.Add"

	if err := validate.Struct(req); err != nil {
		s.metrics.ObserveOperation(OpAdd, metrics.StatusError)
		return models.Record{}, fmt.Errorf("%s: %w: %s", op, ErrInvalidRecord, validate.Message(err))
	}
	purchase, err := validate.Date(req.PurchaseDate)
	if err != nil {
		s.metrics.ObserveOperation(OpAdd, metrics.StatusError)
		return models.Record{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidRecord, err)
	}
	if err := validate.Renewal(purchase, req.Months); err != nil {
		s.metrics.ObserveOperation(OpAdd, metrics.StatusError)
		return models.Record{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidRecord, err)
	}

	rec := models.Record{
		CustomerName: req.CustomerName,
		PurchaseDate: purchase,
		Months:       req.Months,
		RenewalDate:  month.Expiration(purchase, req.Months),
		Email:        req.Email,
	}

	if err := s.repo.Append(ctx, rec); err != nil {
		s.metrics.ObserveOperation(OpAdd, metrics.StatusError)
		s.log.Error("failed to append subscription", sl.Op(op), sl.Err(err))
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveOperation(OpAdd, metrics.StatusOK)

	s.audit.Info("added subscription",
		slog.String("id", uuid.NewString()),
		slog.String("customer", rec.CustomerName),
		slog.Int("months", rec.Months),
		slog.String("renewal_date", rec.RenewalDate.Format(month.DateLayout)),
	)
	s.log.Debug("subscription appended", sl.Op(op), slog.String("customer", rec.CustomerName))

	if records, err := s.repo.LoadAll(ctx); err != nil {
		s.log.Warn("failed to refresh records gauge", sl.Op(op), sl.Err(err))
	} else {
		s.metrics.SetRecords(len(records))
	}

	return rec, nil
}

// Find возвращает первую запись с точным совпадением имени клиента.
func (s *SubscriptionService) Find(ctx context.Context, name string) (models.Record, error) {
	const op = "subscription.Find"

	records, err := s.load(ctx)
	if err != nil {
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	i := indexByName(records, name)
	if i < 0 {
		return models.Record{}, ErrNotFound
	}
	return records[i], nil
}

// Renew продлевает первую подписку клиента с сегодняшнего дня на months месяцев.
// Остальные записи не меняются, хранилище перезаписывается целиком.
func (s *SubscriptionService) Renew(ctx context.Context, name string, months int) (models.Record, error) {
	const op = "subscription.Renew"

	if err := validate.MonthsValue(months); err != nil {
		s.metrics.ObserveOperation(OpRenew, metrics.StatusError)
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}

	records, err := s.load(ctx)
	if err != nil {
		s.metrics.ObserveOperation(OpRenew, metrics.StatusError)
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	i := indexByName(records, name)
	if i < 0 {
		s.metrics.ObserveOperation(OpRenew, metrics.StatusNotFound)
		return models.Record{}, ErrNotFound
	}

	today := s.Today()
	if err := validate.Renewal(today, months); err != nil {
		s.metrics.ObserveOperation(OpRenew, metrics.StatusError)
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	records[i].PurchaseDate = today
	records[i].Months = months
	records[i].RenewalDate = month.Expiration(today, months)

	if err := s.repo.SaveAll(ctx, records); err != nil {
		s.metrics.ObserveOperation(OpRenew, metrics.StatusError)
		s.log.Error("failed to save subscriptions", sl.Op(op), sl.Err(err))
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveOperation(OpRenew, metrics.StatusOK)

	s.audit.Info("renewed subscription",
		slog.String("id", uuid.NewString()),
		slog.String("customer", name),
		slog.Int("months", months),
		slog.String("renewal_date", records[i].RenewalDate.Format(month.DateLayout)),
	)

	return records[i], nil
}

// Cancel удаляет первую подписку клиента и записывает причину в журнал аудита.
func (s *SubscriptionService) Cancel(ctx context.Context, name, reason string) (models.Record, error) {
	const op = "subscription.Cancel"

	records, err := s.load(ctx)
	if err != nil {
		s.metrics.ObserveOperation(OpCancel, metrics.StatusError)
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	i := indexByName(records, name)
	if i < 0 {
		s.metrics.ObserveOperation(OpCancel, metrics.StatusNotFound)
		return models.Record{}, ErrNotFound
	}
	removed := records[i]

	s.audit.Info("canceled subscription",
		slog.String("id", uuid.NewString()),
		slog.String("customer", name),
		slog.String("reason", reason),
	)

	records = slices.Delete(records, i, i+1)
	if err := s.repo.SaveAll(ctx, records); err != nil {
		s.metrics.ObserveOperation(OpCancel, metrics.StatusError)
		s.log.Error("failed to save subscriptions", sl.Op(op), sl.Err(err))
		return models.Record{}, fmt.Errorf("%s: %w", op, err)
	}
	s.metrics.ObserveOperation(OpCancel, metrics.StatusOK)
	s.metrics.SetRecords(len(records))

	return removed, nil
}

// ListAll возвращает все записи, отсортированные по email. Порядок равных сохраняется.
func (s *SubscriptionService) ListAll(ctx context.Context) ([]models.Record, error) {
	const op = "subscription.ListAll"

	records, err := s.load(ctx)
	if err != nil {
		s.metrics.ObserveOperation(OpList, metrics.StatusError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	slices.SortStableFunc(records, func(a, b models.Record) int {
		return strings.Compare(a.Email, b.Email)
	})
	s.metrics.ObserveOperation(OpList, metrics.StatusOK)
	return records, nil
}

// ExpiringSoon возвращает записи с датой продления в отрезке [сегодня, сегодня+window].
func (s *SubscriptionService) ExpiringSoon(ctx context.Context) ([]models.Record, error) {
	const op = "subscription.ExpiringSoon"

	today := s.Today()
	until := today.Add(s.window)
	return s.filter(ctx, op, OpExpiring, func(rec models.Record) bool {
		return month.Within(rec.RenewalDate, today, until)
	})
}

// Expired возвращает записи с датой продления строго раньше сегодняшнего дня.
func (s *SubscriptionService) Expired(ctx context.Context) ([]models.Record, error) {
	const op = "subscription.Expired"

	today := s.Today()
	return s.filter(ctx, op, OpExpired, func(rec models.Record) bool {
		return rec.RenewalDate.Before(today)
	})
}

func (s *SubscriptionService) filter(ctx context.Context, op, operation string, keep func(models.Record) bool) ([]models.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		s.metrics.ObserveOperation(operation, metrics.StatusError)
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []models.Record
	for _, rec := range records {
		if keep(rec) {
			result = append(result, rec)
		}
	}
	s.metrics.ObserveOperation(operation, metrics.StatusOK)
	return result, nil
}

func (s *SubscriptionService) load(ctx context.Context) ([]models.Record, error) {
	records, err := s.repo.LoadAll(ctx)
	if err != nil {
		s.log.Error("failed to load subscriptions", sl.Err(err))
		return nil, err
	}
	s.metrics.SetRecords(len(records))
	return records, nil
}

func indexByName(records []models.Record, name string) int {
	return slices.IndexFunc(records, func(rec models.Record) bool {
		return rec.CustomerName == name
	})
}
