package middleware

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/biblio/internal/lending"
	"github.com/mmynk/biblio/internal/library"
	"github.com/mmynk/biblio/internal/models"
	"github.com/mmynk/biblio/internal/registry"
	"github.com/mmynk/biblio/pkg/logging"
)

func TestLoggingLenderInsideLibrary(t *testing.T) {
	var out bytes.Buffer
	logger := logging.New(&out, slog.LevelInfo)

	reg := registry.New()
	lender := NewLoggingLender(lending.NewEngine(reg), logger)
	lib := library.New("lib",
		library.WithRegistry(reg),
		library.WithLender(lender),
		library.WithLogger(logging.Discard()),
	)

	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	id, err := lib.AddLaptop("Dell", models.OSWindows)
	require.NoError(t, err)

	_, err = lib.BorrowEquipment("a@x.com", id)
	require.NoError(t, err)
	_, err = lib.BorrowEquipment("a@x.com", id)
	assert.ErrorIs(t, err, models.ErrNotLendable)
	require.NoError(t, lib.ReturnEquipment(id))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Lending ok")
	assert.Contains(t, lines[0], "operation=BorrowEquipment")
	assert.Contains(t, lines[1], "Lending error")
	assert.Contains(t, lines[1], `kind="not lendable"`)
	assert.Contains(t, lines[2], "operation=ReturnEquipment")

	assert.Empty(t, lib.Loans())
}

func TestLoggingLenderPassThrough(t *testing.T) {
	reg := registry.New()
	engine := lending.NewEngine(reg)
	lender := NewLoggingLender(engine, logging.Discard())

	member := models.NewMember("a@x.com", "A", "B", models.StatusStudent)
	require.NoError(t, reg.AddMember(member))
	book := models.NewBook("A", "Livre", models.NewPerson("w@x.com", "W", "X"))
	require.NoError(t, reg.AddDocument(book))

	loan, err := lender.Borrow(member, book)
	require.NoError(t, err)
	assert.Same(t, loan, lender.LoanOf(book))
	assert.Len(t, lender.Loans(), 1)

	_, err = lender.ReturnDocument("A")
	require.NoError(t, err)

	_, err = lender.BorrowDocument("a@x.com", "A")
	require.NoError(t, err)
	lender.Discard(book)
	assert.Empty(t, engine.Loans())

	_, err = lender.Return(book)
	require.NoError(t, err)
}
