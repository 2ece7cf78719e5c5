// Package shell реализует интерактивное меню учёта подписок поверх SubscriptionService.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/magabrotheeeer/subtrack/internal/lib/sl"
	"github.com/magabrotheeeer/subtrack/internal/models"
)

// Service операции над подписками, которые вызывает меню.
type Service interface {
	Add(ctx context.Context, req models.DummyRecord) (models.Record, error)
	Find(ctx context.Context, name string) (models.Record, error)
	Renew(ctx context.Context, name string, months int) (models.Record, error)
	Cancel(ctx context.Context, name, reason string) (models.Record, error)
	ListAll(ctx context.Context) ([]models.Record, error)
	ExpiringSoon(ctx context.Context) ([]models.Record, error)
	Expired(ctx context.Context) ([]models.Record, error)
}

const banner = `
 +-+-+-+-+-+-+-+-+-+
 |S|u|b|_|T|r|a|c|k|
 +-+-+-+-+-+-+-+-+-+
`

const menu = `
Subscription Tracker
1. Add Subscription
2. Renew Subscription
3. Cancel Subscription
4. View Subscriptions
5. Check Expiring Subscriptions (Next 2 Weeks)
6. View Expired Subscriptions
7. Exit
`

type line struct {
	text string
	err  error
}

// Shell читает команды построчно из in и пишет ответы в out.
type Shell struct {
	svc        Service
	in         io.Reader
	out        io.Writer
	log        *slog.Logger
	showBanner bool

	lines <-chan line
}

// New создаёт оболочку.
func New(svc Service, in io.Reader, out io.Writer, log *slog.Logger, showBanner bool) *Shell {
	return &Shell{
		svc:        svc,
		in:         in,
		out:        out,
		log:        log,
		showBanner: showBanner,
	}
}

// Run крутит меню до выбора Exit, конца ввода или отмены ctx.
// Конец ввода считается штатным выходом, отмена ctx возвращает ctx.Err().
func (sh *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	sh.lines = readLines(sh.in, done)

	if sh.showBanner {
		sh.print(banner)
	}

	for {
		sh.print(menu)
		choice, err := sh.readLine(ctx, "Choose an option: ")
		if err != nil {
			return sh.stop(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = sh.add(ctx)
		case "2":
			err = sh.renew(ctx)
		case "3":
			err = sh.cancel(ctx)
		case "4":
			err = sh.view(ctx)
		case "5":
			err = sh.expiring(ctx)
		case "6":
			err = sh.expired(ctx)
		case "7":
			sh.print("Exiting the program.\n")
			return nil
		default:
			sh.print("Invalid choice. Please try again.\n")
			continue
		}

		if err == nil {
			continue
		}
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return sh.stop(err)
		}
		sh.log.Error("operation failed", sl.Err(err))
		sh.printf("Error: %v\n", err)
	}
}

func (sh *Shell) stop(err error) error {
	sh.print("\nExiting the program.\n")
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// readLines читает строки в отдельной горутине, чтобы ожидание ввода можно было прервать через ctx.
func readLines(r io.Reader, done <-chan struct{}) <-chan line {
	ch := make(chan line)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- line{text: strings.TrimRight(scanner.Text(), "\r")}:
			case <-done:
				return
			}
		}
		err := scanner.Err()
		if err == nil {
			err = io.EOF
		}
		select {
		case ch <- line{err: err}:
		case <-done:
		}
	}()
	return ch
}

func (sh *Shell) readLine(ctx context.Context, prompt string) (string, error) {
	sh.print(prompt)

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-sh.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

func (sh *Shell) print(s string) {
	_, _ = io.WriteString(sh.out, s)
}

func (sh *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(sh.out, format, args...)
}
