package shell

import (
	"context"
	"strings"
	"time"

	"github.com/magabrotheeeer/subtrack/internal/lib/validate"
)

// Все запросы ниже переспрашивают без ограничения числа попыток.
// Прервать их можно только концом ввода или отменой ctx.

func (sh *Shell) promptName(ctx context.Context, prompt string) (string, error) {
	for {
		name, err := sh.readLine(ctx, prompt)
		if err != nil {
			return "", err
		}
		if name = strings.TrimSpace(name); name != "" {
			return name, nil
		}
		sh.print("Customer name must not be empty.\n")
	}
}

func (sh *Shell) promptEmail(ctx context.Context) (string, error) {
	for {
		email, err := sh.readLine(ctx, "Enter account owner email: ")
		if err != nil {
			return "", err
		}
		if err := validate.Email(email); err == nil {
			return email, nil
		}
		sh.print("Invalid email format. Please try again.\n")
	}
}

func (sh *Shell) promptDate(ctx context.Context, prompt string) (time.Time, error) {
	for {
		s, err := sh.readLine(ctx, prompt)
		if err != nil {
			return time.Time{}, err
		}
		date, err := validate.Date(s)
		if err == nil {
			return date, nil
		}
		sh.print("Invalid date format. Please use YYYY-MM-DD.\n")
	}
}

func (sh *Shell) promptMonths(ctx context.Context) (int, error) {
	for {
		s, err := sh.readLine(ctx, "Enter duration (in months): ")
		if err != nil {
			return 0, err
		}
		months, err := validate.Months(s)
		if err == nil {
			return months, nil
		}
		sh.printf("Invalid input: %v. Please enter a positive integer.\n", err)
	}
}
