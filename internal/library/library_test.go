package library

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/biblio/internal/lending"
	"github.com/mmynk/biblio/internal/models"
	"github.com/mmynk/biblio/internal/notify"
	"github.com/mmynk/biblio/pkg/logging"
)

var fixedNow = time.Date(2024, 10, 1, 14, 0, 0, 0, time.UTC)

// changeLog records every change published by a library.
type changeLog struct {
	changes []models.Change
	sources []string
}

func (c *changeLog) OnChange(source string, change models.Change) error {
	c.changes = append(c.changes, change)
	c.sources = append(c.sources, source)
	return nil
}

func (c *changeLog) reset() {
	c.changes = nil
	c.sources = nil
}

func newTestLibrary(t *testing.T, opts ...Option) (*Library, *changeLog) {
	t.Helper()

	opts = append([]Option{
		WithLogger(logging.Discard()),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	lib := New("Ma Bibliothèque", opts...)
	log := &changeLog{}
	lib.Subscribe(log)
	return lib, log
}

func change(t models.ChangeType, d models.Domain) models.Change {
	return models.Change{Type: t, Domain: d}
}

func TestAddMemberScenario(t *testing.T) {
	lib, log := newTestLibrary(t)

	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))

	m, err := lib.Member("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.StatusStudent, m.Status)
	assert.Equal(t, []models.Change{change(models.ChangeAdd, models.DomainMember)}, log.changes)
	assert.Equal(t, []string{"Ma Bibliothèque"}, log.sources)
}

func TestAddBookUnknownAuthor(t *testing.T) {
	lib, log := newTestLibrary(t)

	err := lib.AddBook("123-XY", "Title", "author@x.com")
	assert.ErrorIs(t, err, models.ErrAuthorNotFound)
	assert.Equal(t, models.KindAuthorNotFound, models.KindOf(err))

	_, err = lib.Document("123-XY")
	assert.ErrorIs(t, err, models.ErrDocumentNotFound)
	assert.Empty(t, log.changes)
}

func TestAddBookKnownAuthor(t *testing.T) {
	lib, log := newTestLibrary(t)
	author := models.NewPerson("author@x.com", "Au", "Thor")

	require.NoError(t, lib.AddAuthor(author))
	require.NoError(t, lib.AddBook("123-XY", "Title", "author@x.com"))

	doc, err := lib.Document("123-XY")
	require.NoError(t, err)
	assert.Equal(t, "Title", doc.Title())
	assert.Same(t, author, doc.Author())
	assert.Equal(t, []models.Change{
		change(models.ChangeAdd, models.DomainAuthor),
		change(models.ChangeAdd, models.DomainDocument),
	}, log.changes)
}

func TestLaptopLendingScenario(t *testing.T) {
	lib, log := newTestLibrary(t)
	require.NoError(t, lib.AddMember("pierre@x.com", "pierre", "dupond", models.StatusTeacher))
	require.NoError(t, lib.AddMember("marc@x.com", "marc", "durand", models.StatusStudent))

	id, err := lib.AddLaptop("Dell", models.OSWindows)
	require.NoError(t, err)
	log.reset()

	loan, err := lib.BorrowEquipment("pierre@x.com", id)
	require.NoError(t, err)
	assert.Equal(t, fixedNow, loan.Since)

	_, err = lib.BorrowEquipment("marc@x.com", id)
	assert.ErrorIs(t, err, models.ErrNotLendable)

	require.NoError(t, lib.ReturnEquipment(id))

	_, err = lib.BorrowEquipment("marc@x.com", id)
	require.NoError(t, err)

	assert.Equal(t, []models.Change{
		change(models.ChangeAdd, models.DomainLoan),
		change(models.ChangeRemove, models.DomainLoan),
		change(models.ChangeAdd, models.DomainLoan),
	}, log.changes)

	item, err := lib.Equipment(id)
	require.NoError(t, err)
	assert.Equal(t, "marc@x.com", item.LoanState().Borrower.Email)
}

func TestOneChangePerSuccessfulMutation(t *testing.T) {
	lib, log := newTestLibrary(t)
	author := models.NewPerson("marie@x.com", "marie", "durand")
	member := models.NewMember("jean@x.com", "jean", "martin", models.StatusStudent)

	var laptopID int
	steps := []struct {
		name string
		run  func() error
		want models.Change
	}{
		{"add author", func() error { return lib.AddAuthor(author) }, change(models.ChangeAdd, models.DomainAuthor)},
		{"enroll", func() error { return lib.Enroll(member) }, change(models.ChangeAdd, models.DomainMember)},
		{"add book", func() error { return lib.AddBook("A", "Livre A", "marie@x.com") }, change(models.ChangeAdd, models.DomainDocument)},
		{"add book by", func() error { return lib.AddBookBy("B", "Livre B", author) }, change(models.ChangeAdd, models.DomainDocument)},
		{"add laptop", func() error {
			var err error
			laptopID, err = lib.AddLaptop("Vaio", models.OSLinux)
			return err
		}, change(models.ChangeAdd, models.DomainEquipment)},
		{"borrow document", func() error {
			_, err := lib.BorrowDocument("jean@x.com", "A")
			return err
		}, change(models.ChangeAdd, models.DomainLoan)},
		{"return document", func() error { return lib.ReturnDocument("A") }, change(models.ChangeRemove, models.DomainLoan)},
		{"borrow by value", func() error {
			item, err := lib.Equipment(laptopID)
			if err != nil {
				return err
			}
			_, err = lib.Borrow(member, item)
			return err
		}, change(models.ChangeAdd, models.DomainLoan)},
		{"return by value", func() error {
			item, err := lib.Equipment(laptopID)
			if err != nil {
				return err
			}
			return lib.Return(item)
		}, change(models.ChangeRemove, models.DomainLoan)},
		{"remove document", func() error { return lib.RemoveDocument("B") }, change(models.ChangeRemove, models.DomainDocument)},
		{"remove equipment", func() error { return lib.RemoveEquipment(laptopID) }, change(models.ChangeRemove, models.DomainEquipment)},
		{"remove member", func() error { return lib.RemoveMember("jean@x.com") }, change(models.ChangeRemove, models.DomainMember)},
		{"remove author", func() error { return lib.RemoveAuthor("marie@x.com") }, change(models.ChangeRemove, models.DomainAuthor)},
	}

	for _, step := range steps {
		log.reset()
		require.NoError(t, step.run(), step.name)
		assert.Equal(t, []models.Change{step.want}, log.changes, step.name)
	}
}

func TestFailedCallsPublishNothing(t *testing.T) {
	lib, log := newTestLibrary(t)
	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	require.NoError(t, lib.AddAuthor(models.NewPerson("w@x.com", "W", "X")))
	require.NoError(t, lib.AddBook("A", "Livre", "w@x.com"))
	id, err := lib.AddLaptop("Dell", models.OSWindows)
	require.NoError(t, err)
	_, err = lib.BorrowDocument("a@x.com", "A")
	require.NoError(t, err)
	log.reset()

	failures := []struct {
		name string
		run  func() error
		want *models.Error
	}{
		{"duplicate member", func() error { return lib.AddMember("a@x.com", "A", "B", models.StatusTeacher) }, models.ErrDuplicateKey},
		{"duplicate author", func() error { return lib.AddAuthor(models.NewPerson("w@x.com", "W", "X")) }, models.ErrDuplicateKey},
		{"duplicate book", func() error { return lib.AddBook("A", "Again", "w@x.com") }, models.ErrDuplicateKey},
		{"invalid laptop", func() error {
			_, err := lib.AddLaptop("", models.OSLinux)
			return err
		}, models.ErrInvalidArgument},
		{"borrow on loan", func() error {
			_, err := lib.BorrowDocument("a@x.com", "A")
			return err
		}, models.ErrNotLendable},
		{"borrow unknown member", func() error {
			_, err := lib.BorrowEquipment("z@x.com", id)
			return err
		}, models.ErrMemberNotFound},
		{"borrow unknown equipment", func() error {
			_, err := lib.BorrowEquipment("a@x.com", id+1)
			return err
		}, models.ErrEquipmentNotFound},
		{"return available", func() error { return lib.ReturnEquipment(id) }, models.ErrNotLendable},
		{"return unknown document", func() error { return lib.ReturnDocument("Z") }, models.ErrDocumentNotFound},
		{"remove unknown member", func() error { return lib.RemoveMember("z@x.com") }, models.ErrMemberNotFound},
		{"remove unknown author", func() error { return lib.RemoveAuthor("z@x.com") }, models.ErrAuthorNotFound},
		{"remove unknown document", func() error { return lib.RemoveDocument("Z") }, models.ErrDocumentNotFound},
		{"remove unknown equipment", func() error { return lib.RemoveEquipment(id + 1) }, models.ErrEquipmentNotFound},
	}

	for _, f := range failures {
		err := f.run()
		assert.ErrorIs(t, err, f.want, f.name)
	}
	assert.Empty(t, log.changes)
}

func TestSecondBorrowLeavesStateUnchanged(t *testing.T) {
	lib, _ := newTestLibrary(t)
	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	require.NoError(t, lib.AddMember("c@x.com", "C", "D", models.StatusTeacher))
	require.NoError(t, lib.AddBookBy("A", "Livre", models.NewPerson("w@x.com", "W", "X")))

	first, err := lib.BorrowDocument("a@x.com", "A")
	require.NoError(t, err)

	doc, err := lib.Document("A")
	require.NoError(t, err)
	before := doc.LoanState()

	for _, email := range []string{"a@x.com", "c@x.com"} {
		_, err := lib.BorrowDocument(email, "A")
		assert.ErrorIs(t, err, models.ErrNotLendable)
		assert.Equal(t, before, doc.LoanState())
	}
	assert.Equal(t, []*models.Loan{first}, lib.Loans())
}

func TestBorrowReturnRoundTrip(t *testing.T) {
	lib, _ := newTestLibrary(t)
	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	id, err := lib.AddLaptop("Macbook Pro", models.OSMacOS)
	require.NoError(t, err)

	item, err := lib.Equipment(id)
	require.NoError(t, err)
	initial := item.LoanState()

	_, err = lib.BorrowEquipment("a@x.com", id)
	require.NoError(t, err)
	require.NotNil(t, lib.LoanOf(item))
	require.NoError(t, lib.ReturnEquipment(id))

	assert.Equal(t, initial, item.LoanState())
	assert.Nil(t, lib.LoanOf(item))
	assert.Empty(t, lib.Loans())
}

func TestRemoveEquipmentOnLoanClosesLoan(t *testing.T) {
	lib, log := newTestLibrary(t)
	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	laptop := models.NewLaptop("Dell", models.OSWindows)
	id, err := lib.AddEquipment(laptop)
	require.NoError(t, err)
	_, err = lib.BorrowEquipment("a@x.com", id)
	require.NoError(t, err)

	log.reset()
	require.NoError(t, lib.RemoveEquipment(id))
	assert.Equal(t, []models.Change{change(models.ChangeRemove, models.DomainEquipment)}, log.changes)
	assert.Empty(t, lib.Loans())
	assert.Empty(t, lib.EquipmentIDs())
	assert.False(t, laptop.LoanState().OnLoan())
	assert.Nil(t, lib.LoanOf(laptop))

	again, err := lib.AddEquipment(laptop)
	require.NoError(t, err)
	assert.NotEqual(t, id, again)

	err = lib.ReturnEquipment(again)
	assert.ErrorIs(t, err, models.ErrNotLendable)

	loan, err := lib.BorrowEquipment("a@x.com", again)
	require.NoError(t, err)
	assert.Same(t, laptop, loan.Item)
	assert.Len(t, lib.Loans(), 1)
}

func TestRemoveDocumentOnLoanClosesLoan(t *testing.T) {
	lib, log := newTestLibrary(t)
	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	book := models.NewBook("X", "Livre X", models.NewPerson("w@x.com", "W", "X"))
	require.NoError(t, lib.AddDocument(book))
	_, err := lib.BorrowDocument("a@x.com", "X")
	require.NoError(t, err)

	log.reset()
	require.NoError(t, lib.RemoveDocument("X"))
	assert.Equal(t, []models.Change{change(models.ChangeRemove, models.DomainDocument)}, log.changes)
	assert.Empty(t, lib.Loans())
	assert.False(t, book.LoanState().OnLoan())

	require.NoError(t, lib.AddDocument(book))

	log.reset()
	err = lib.ReturnDocument("X")
	assert.ErrorIs(t, err, models.ErrNotLendable)
	assert.Empty(t, log.changes)

	loan, err := lib.BorrowDocument("a@x.com", "X")
	require.NoError(t, err)
	assert.Same(t, book, loan.Item)
	assert.Equal(t, []models.Change{change(models.ChangeAdd, models.DomainLoan)}, log.changes)
}

func TestTypedNilItemsAreRejected(t *testing.T) {
	lib, log := newTestLibrary(t)
	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	member, err := lib.Member("a@x.com")
	require.NoError(t, err)
	log.reset()

	assert.ErrorIs(t, lib.AddDocument((*models.Book)(nil)), models.ErrInvalidArgument)

	_, err = lib.AddEquipment((*models.Laptop)(nil))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = lib.Borrow(member, (*models.Laptop)(nil))
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	assert.ErrorIs(t, lib.Return((*models.Book)(nil)), models.ErrInvalidArgument)
	assert.Empty(t, log.changes)
}

func TestObserverFailureDoesNotBreakMutation(t *testing.T) {
	lib := New("lib", WithLogger(logging.Discard()))
	var second []models.Change

	lib.Subscribe(notify.ObserverFunc(func(string, models.Change) error {
		panic("boom")
	}))
	lib.Subscribe(notify.ObserverFunc(func(_ string, c models.Change) error {
		second = append(second, c)
		return nil
	}))

	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	assert.Equal(t, []models.Change{change(models.ChangeAdd, models.DomainMember)}, second)

	_, err := lib.Member("a@x.com")
	assert.NoError(t, err)
}

func TestObserverMayReadLibrary(t *testing.T) {
	lib := New("lib", WithLogger(logging.Discard()))
	var seen []string

	lib.Subscribe(notify.ObserverFunc(func(string, models.Change) error {
		seen = lib.MemberIDs()
		return nil
	}))

	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	assert.Equal(t, []string{"a@x.com"}, seen)
}

func TestEngineOptions(t *testing.T) {
	closed := errors.New("library closed")
	lib, log := newTestLibrary(t, WithEngineOptions(lending.WithPolicy(func(*models.Member, models.Lendable) error {
		return closed
	})))
	require.NoError(t, lib.AddMember("a@x.com", "A", "B", models.StatusStudent))
	id, err := lib.AddLaptop("Dell", models.OSWindows)
	require.NoError(t, err)
	log.reset()

	_, err = lib.BorrowEquipment("a@x.com", id)
	assert.ErrorIs(t, err, models.ErrBorrowFailed)
	assert.ErrorIs(t, err, closed)
	assert.Empty(t, log.changes)
}

func TestReadsAreSnapshots(t *testing.T) {
	lib, log := newTestLibrary(t)
	require.NoError(t, lib.AddAuthor(models.NewPerson("w@x.com", "W", "X")))
	require.NoError(t, lib.AddBook("B", "Livre B", "w@x.com"))
	require.NoError(t, lib.AddBook("A", "Livre A", "w@x.com"))
	log.reset()

	assert.Equal(t, []string{"A", "B"}, lib.DocumentIDs())
	docs := lib.Documents()
	require.Len(t, docs, 2)
	assert.Equal(t, "B", docs[0].ISBN())
	assert.Equal(t, []string{"w@x.com"}, lib.AuthorIDs())
	assert.Len(t, lib.Authors(), 1)
	assert.Empty(t, lib.Members())
	assert.Empty(t, lib.MemberIDs())
	assert.Empty(t, lib.AllEquipment())
	assert.Empty(t, log.changes)
}
