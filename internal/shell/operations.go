package shell

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/magabrotheeeer/subtrack/internal/lib/month"
	"github.com/magabrotheeeer/subtrack/internal/lib/validate"
	"github.com/magabrotheeeer/subtrack/internal/models"
	services "github.com/magabrotheeeer/subtrack/internal/services/subscription"
)

func (sh *Shell) add(ctx context.Context) error {
	name, err := sh.promptName(ctx, "Enter customer name: ")
	if err != nil {
		return err
	}
	email, err := sh.promptEmail(ctx)
	if err != nil {
		return err
	}
	purchase, months, err := sh.promptTerm(ctx)
	if err != nil {
		return err
	}

	rec, err := sh.svc.Add(ctx, models.DummyRecord{
		CustomerName: name,
		Email:        email,
		PurchaseDate: purchase.Format(month.DateLayout),
		Months:       months,
	})
	if err != nil {
		return err
	}
	sh.printf("Subscription for %s added. Expires on %s.\n", rec.CustomerName, rec.RenewalDate.Format(month.DateLayout))
	return nil
}

// promptTerm спрашивает дату покупки и срок, пока дата продления не уложится в DateLayout.
func (sh *Shell) promptTerm(ctx context.Context) (time.Time, int, error) {
	for {
		purchase, err := sh.promptDate(ctx, "Enter purchase date (YYYY-MM-DD): ")
		if err != nil {
			return time.Time{}, 0, err
		}
		months, err := sh.promptMonths(ctx)
		if err != nil {
			return time.Time{}, 0, err
		}
		if err := validate.Renewal(purchase, months); err == nil {
			return purchase, months, nil
		}
		sh.printf("Renewal date would be beyond year %d. Please try again.\n", month.MaxYear)
	}
}

func (sh *Shell) renew(ctx context.Context) error {
	name, err := sh.readLine(ctx, "Enter customer name to renew subscription: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if _, err := sh.svc.Find(ctx, name); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sh.print("Customer not found or unable to renew.\n")
			return nil
		}
		return err
	}

	var rec models.Record
	for {
		months, perr := sh.promptMonths(ctx)
		if perr != nil {
			return perr
		}
		rec, err = sh.svc.Renew(ctx, name, months)
		if !errors.Is(err, validate.ErrRenewalOutOfRange) {
			break
		}
		sh.printf("Renewal date would be beyond year %d. Please try again.\n", month.MaxYear)
	}
	if errors.Is(err, services.ErrNotFound) {
		sh.print("Customer not found or unable to renew.\n")
		return nil
	}
	if err != nil {
		return err
	}
	sh.printf("Subscription for %s renewed. New expiration date is %s.\n", name, rec.RenewalDate.Format(month.DateLayout))
	return nil
}

func (sh *Shell) cancel(ctx context.Context) error {
	name, err := sh.readLine(ctx, "Enter customer name to cancel subscription: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if _, err := sh.svc.Find(ctx, name); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			sh.print("Customer not found or unable to cancel.\n")
			return nil
		}
		return err
	}

	reason, err := sh.readLine(ctx, "Enter reason for cancellation: ")
	if err != nil {
		return err
	}
	_, err = sh.svc.Cancel(ctx, name, reason)
	if errors.Is(err, services.ErrNotFound) {
		sh.print("Customer not found or unable to cancel.\n")
		return nil
	}
	if err != nil {
		return err
	}
	sh.printf("Subscription for %s has been canceled.\n", name)
	return nil
}

func (sh *Shell) view(ctx context.Context) error {
	records, err := sh.svc.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		sh.print("No subscriptions found.\n")
		return nil
	}
	sh.print("\nCurrent Subscriptions (Sorted by Email):\n")
	writeFullTable(sh.out, records)
	return nil
}

func (sh *Shell) expiring(ctx context.Context) error {
	records, err := sh.svc.ExpiringSoon(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		sh.print("No subscriptions are expiring within the next two weeks.\n")
		return nil
	}
	sh.print("\nSubscriptions Expiring Within Two Weeks:\n")
	writeRenewalTable(sh.out, records)
	return nil
}

func (sh *Shell) expired(ctx context.Context) error {
	records, err := sh.svc.Expired(ctx)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		sh.print("No expired subscriptions found.\n")
		return nil
	}
	sh.print("\nExpired Subscriptions:\n")
	writeRenewalTable(sh.out, records)
	return nil
}
