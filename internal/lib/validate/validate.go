// Package validate проверяет пользовательский ввод: email, дату покупки и количество месяцев.
// Правила зарегистрированы в экземпляре go-playground/validator, поэтому они же
// применяются к тегам структуры models.DummyRecord.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/subtrack/internal/lib/month"
)

var (
	// ErrInvalidEmail email не соответствует шаблону local@domain.tld.
	ErrInvalidEmail = errors.New("invalid email format")
	// ErrInvalidDate дата не в формате YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
	// ErrInvalidMonths длительность не является положительным целым числом.
	ErrInvalidMonths = errors.New("duration must be a positive integer")
	// ErrRenewalOutOfRange дата продления выходит за 9999 год и не может быть сохранена.
	ErrRenewalOutOfRange = errors.New("renewal date is beyond year 9999")
)

// MaxMonths верхняя граница длительности подписки (100 лет).
const MaxMonths = 1200

var monthsTag = fmt.Sprintf("gt=0,lte=%d", MaxMonths)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	if err := val.RegisterValidation("subemail", isEmail); err != nil {
		panic(err)
	}
	if err := val.RegisterValidation("subdate", isDate); err != nil {
		panic(err)
	}
	return val
}

func isEmail(fl validator.FieldLevel) bool {
	return emailRegexp.MatchString(fl.Field().String())
}

func isDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(month.DateLayout, fl.Field().String())
	return err == nil
}

// Email проверяет формат email.
func Email(email string) error {
	if err := v.Var(email, "required,subemail"); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// Date разбирает строку в формате YYYY-MM-DD и возвращает дату в UTC.
func Date(s string) (time.Time, error) {
	if err := v.Var(s, "required,subdate"); err != nil {
		return time.Time{}, ErrInvalidDate
	}
	date, err := time.Parse(month.DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

// Months разбирает количество месяцев: положительное целое не больше MaxMonths.
func Months(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidMonths, s)
	}
	if err := MonthsValue(n); err != nil {
		return 0, err
	}
	return n, nil
}

// MonthsValue проверяет уже разобранное количество месяцев.
func MonthsValue(n int) error {
	if err := v.Var(n, monthsTag); err != nil {
		return fmt.Errorf("%w: must be between 1 and %d", ErrInvalidMonths, MaxMonths)
	}
	return nil
}

// Renewal проверяет, что дата продления, вычисленная от purchase, помещается в формат хранилища.
func Renewal(purchase time.Time, months int) error {
	if !month.Representable(purchase) || !month.Representable(month.Expiration(purchase, months)) {
		return ErrRenewalOutOfRange
	}
	return nil
}

// Struct проверяет структуру по её тегам validate.
func Struct(s any) error {
	return v.Struct(s)
}

// Message превращает ошибку валидации в текст, пригодный для вывода пользователю.
func Message(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}

	var errsMsgs []string
	for _, fe := range errs {
		switch fe.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", fe.Field()))
		case "subemail":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", fe.Field()))
		case "subdate":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a date in format YYYY-MM-DD", fe.Field()))
		case "gt":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be greater than %s", fe.Field(), fe.Param()))
		case "lte":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be at most %s", fe.Field(), fe.Param()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not valid", fe.Field()))
		}
	}
	return strings.Join(errsMsgs, ", ")
}
