// Package month содержит арифметику дат подписки.
package month

import (
	"time"
)

// DaysPerMonth приближённая длина месяца подписки в днях.
const DaysPerMonth = 30

// DateLayout формат календарной даты, в котором даты вводятся и хранятся.
const DateLayout = "2006-01-02"

// MaxYear последний год, который помещается в четыре цифры DateLayout.
const MaxYear = 9999

// Expiration возвращает дату окончания подписки: дата покупки плюс 30 дней на каждый месяц.
// Календарные месяцы здесь не используются.
func Expiration(purchase time.Time, months int) time.Time {
	return purchase.AddDate(0, 0, DaysPerMonth*months)
}

// Representable сообщает, можно ли записать дату в формате DateLayout и прочитать обратно.
func Representable(date time.Time) bool {
	return date.Year() >= 0 && date.Year() <= MaxYear
}

// Today отбрасывает время суток и возвращает календарную дату в UTC.
func Today(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Within сообщает, попадает ли дата в отрезок [from, to] включительно.
func Within(date, from, to time.Time) bool {
	return !date.Before(from) && !date.After(to)
}
