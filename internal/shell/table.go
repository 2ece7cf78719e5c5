package shell

import (
	"fmt"
	"io"

	"github.com/magabrotheeeer/subtrack/internal/lib/month"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

const (
	fullRowFormat    = "%-20s %-15s %-10s %-15s %s\n"
	renewalRowFormat = "%-20s %-15s %-10s %s\n"
)

// writeFullTable печатает все поля записей.
func writeFullTable(w io.Writer, records []models.Record) {
	_, _ = fmt.Fprintf(w, fullRowFormat,
		models.ColumnCustomerName, models.ColumnPurchaseDate, models.ColumnMonths, models.ColumnRenewalDate, models.ColumnEmail)
	for _, rec := range records {
		_, _ = fmt.Fprintf(w, fullRowFormat,
			rec.CustomerName,
			rec.PurchaseDate.Format(month.DateLayout),
			fmt.Sprint(rec.Months),
			rec.RenewalDate.Format(month.DateLayout),
			rec.Email)
	}
}

// writeRenewalTable печатает имя, дату продления, месяцы и email.
func writeRenewalTable(w io.Writer, records []models.Record) {
	_, _ = fmt.Fprintf(w, renewalRowFormat,
		models.ColumnCustomerName, models.ColumnRenewalDate, models.ColumnMonths, models.ColumnEmail)
	for _, rec := range records {
		_, _ = fmt.Fprintf(w, renewalRowFormat,
			rec.CustomerName,
			rec.RenewalDate.Format(month.DateLayout),
			fmt.Sprint(rec.Months),
			rec.Email)
	}
}
