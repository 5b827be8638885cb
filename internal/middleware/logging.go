// Package middleware wraps library collaborators with cross-cutting
// behaviour.
package middleware

import (
	"log/slog"
	"time"

	"github.com/mmynk/biblio/internal/library"
	"github.com/mmynk/biblio/internal/models"
)

// LoggingLender wraps a library.Lender and logs every lending call.
// It logs the operation, the item key, duration, and the error kind if any.
type LoggingLender struct {
	next   library.Lender
	logger *slog.Logger
}

var _ library.Lender = (*LoggingLender)(nil)

// NewLoggingLender returns next wrapped with call logging.
// A nil logger means slog.Default().
func NewLoggingLender(next library.Lender, logger *slog.Logger) *LoggingLender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingLender{next: next, logger: logger}
}

func (l *LoggingLender) observe(op, key string, start time.Time, err error) {
	duration := time.Since(start).Microseconds()
	if err != nil {
		l.logger.Warn("Lending error",
			"operation", op,
			"item", key,
			"kind", models.KindOf(err).String(),
			"error", err,
			"duration_us", duration,
		)
		return
	}
	l.logger.Info("Lending ok",
		"operation", op,
		"item", key,
		"duration_us", duration,
	)
}

func (l *LoggingLender) BorrowDocument(email, isbn string) (*models.Loan, error) {
	start := time.Now()
	loan, err := l.next.BorrowDocument(email, isbn)
	l.observe("BorrowDocument", models.DocumentKey(isbn), start, err)
	return loan, err
}

func (l *LoggingLender) BorrowEquipment(email string, id int) (*models.Loan, error) {
	start := time.Now()
	loan, err := l.next.BorrowEquipment(email, id)
	l.observe("BorrowEquipment", models.EquipmentKey(id), start, err)
	return loan, err
}

func (l *LoggingLender) Borrow(member *models.Member, item models.Lendable) (*models.Loan, error) {
	start := time.Now()
	loan, err := l.next.Borrow(member, item)
	l.observe("Borrow", keyOf(item), start, err)
	return loan, err
}

func (l *LoggingLender) ReturnDocument(isbn string) (*models.Loan, error) {
	start := time.Now()
	loan, err := l.next.ReturnDocument(isbn)
	l.observe("ReturnDocument", models.DocumentKey(isbn), start, err)
	return loan, err
}

func (l *LoggingLender) ReturnEquipment(id int) (*models.Loan, error) {
	start := time.Now()
	loan, err := l.next.ReturnEquipment(id)
	l.observe("ReturnEquipment", models.EquipmentKey(id), start, err)
	return loan, err
}

func (l *LoggingLender) Return(item models.Lendable) (*models.Loan, error) {
	start := time.Now()
	loan, err := l.next.Return(item)
	l.observe("Return", keyOf(item), start, err)
	return loan, err
}

// Discard is passed through without logging.
func (l *LoggingLender) Discard(item models.Lendable) {
	l.next.Discard(item)
}

func (l *LoggingLender) LoanOf(item models.Lendable) *models.Loan {
	return l.next.LoanOf(item)
}

func (l *LoggingLender) Loans() []*models.Loan {
	return l.next.Loans()
}

func keyOf(item models.Lendable) string {
	if models.IsNil(item) {
		return ""
	}
	return item.LendableKey()
}
