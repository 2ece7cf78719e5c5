// Package models содержит доменную структуру записи о подписке
// и вспомогательный тип для приёма сырого пользовательского ввода.
package models

import "time"

// Column names of the backing CSV store, in the order they are written.
const (
	ColumnCustomerName = "Customer Name"
	ColumnPurchaseDate = "Purchase Date"
	ColumnMonths       = "Months"
	ColumnRenewalDate  = "Renewal Date"
	ColumnEmail        = "Email"
)

// Header строка заголовка хранилища.
var Header = []string{
	ColumnCustomerName,
	ColumnPurchaseDate,
	ColumnMonths,
	ColumnRenewalDate,
	ColumnEmail,
}

// Record представляет собой запись о подписке клиента.
// RenewalDate всегда вычисляется из PurchaseDate и Months и хранится лишь для удобства.
type Record struct {
	CustomerName string    // Имя клиента, не уникально
	PurchaseDate time.Time // Дата покупки
	Months       int       // Длительность подписки в месяцах
	RenewalDate  time.Time // Дата продления
	Email        string    // Email владельца аккаунта
}

// DummyRecord используется для приёма данных, введённых пользователем,
// прежде чем конвертировать их в Record.
type DummyRecord struct {
	CustomerName string `validate:"required"`               // Имя клиента
	Email        string `validate:"required,subemail"`      // Email владельца
	PurchaseDate string `validate:"required,subdate"`       // Дата в формате 2006-01-02
	Months       int    `validate:"required,gt=0,lte=1200"` // Количество месяцев (1..1200)
}
