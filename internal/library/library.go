// Package library is the entry point to a library: it composes the
// registry, the lending engine and the change bus, and publishes exactly one
// change after every successful mutation.
package library

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/mmynk/biblio/internal/lending"
	"github.com/mmynk/biblio/internal/models"
	"github.com/mmynk/biblio/internal/notify"
	"github.com/mmynk/biblio/internal/registry"
)

// Registry is the set of keyed-store operations the facade needs.
// *registry.Registry satisfies it.
type Registry interface {
	AddAuthor(p *models.Person) error
	AddMember(m *models.Member) error
	AddDocument(d models.Document) error
	AddEquipment(e models.Equipment) (int, error)

	Author(email string) (*models.Person, error)
	Member(email string) (*models.Member, error)
	Document(isbn string) (models.Document, error)
	Equipment(id int) (models.Equipment, error)

	RemoveAuthor(email string) error
	RemoveMember(email string) error
	RemoveDocument(isbn string) error
	RemoveEquipment(id int) error

	AuthorIDs() []string
	MemberIDs() []string
	DocumentIDs() []string
	EquipmentIDs() []int

	Authors() []*models.Person
	Members() []*models.Member
	Documents() []models.Document
	AllEquipment() []models.Equipment
}

// Lender is the set of lending operations the facade needs.
// *lending.Engine satisfies it.
type Lender interface {
	BorrowDocument(email, isbn string) (*models.Loan, error)
	BorrowEquipment(email string, id int) (*models.Loan, error)
	Borrow(member *models.Member, item models.Lendable) (*models.Loan, error)

	ReturnDocument(isbn string) (*models.Loan, error)
	ReturnEquipment(id int) (*models.Loan, error)
	Return(item models.Lendable) (*models.Loan, error)

	Discard(item models.Lendable)
	LoanOf(item models.Lendable) *models.Loan
	Loans() []*models.Loan
}

var (
	_ Registry = (*registry.Registry)(nil)
	_ Lender   = (*lending.Engine)(nil)
)

// Library is the facade over one library's state.
//
// Mutations are serialized by an internal lock. Changes are published after
// the lock is released, so observers may call back into the library.
type Library struct {
	mu sync.Mutex

	name   string
	reg    Registry
	lender Lender
	bus    *notify.Bus
	logger *slog.Logger
	now    func() time.Time

	engineOpts []lending.Option
}

// Option configures a Library.
type Option func(*Library)

// WithRegistry replaces the default in-memory registry.
func WithRegistry(r Registry) Option {
	return func(l *Library) { l.reg = r }
}

// WithLender replaces the default lending engine. The lender must resolve
// entities through the same registry as the library.
func WithLender(lender Lender) Option {
	return func(l *Library) { l.lender = lender }
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Library) { l.logger = logger }
}

// WithClock sets the time source for loans and snapshots.
func WithClock(now func() time.Time) Option {
	return func(l *Library) { l.now = now }
}

// WithEngineOptions passes options to the default lending engine.
func WithEngineOptions(opts ...lending.Option) Option {
	return func(l *Library) { l.engineOpts = append(l.engineOpts, opts...) }
}

// New creates an empty library named name.
func New(name string, opts ...Option) *Library {
	l := &Library{
		name:   name,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.reg == nil {
		l.reg = registry.New()
	}
	if l.lender == nil {
		engineOpts := append([]lending.Option{lending.WithClock(l.now)}, l.engineOpts...)
		l.lender = lending.NewEngine(l.reg, engineOpts...)
	}
	l.bus = notify.NewBus(l.logger)
	return l
}

// Name returns the library's name.
func (l *Library) Name() string {
	return l.name
}

// Subscribe registers o for every change of this library.
func (l *Library) Subscribe(o notify.Observer) (unsubscribe func()) {
	return l.bus.Subscribe(o)
}

// mutate runs fn under the lock and publishes change if it succeeded.
func (l *Library) mutate(op string, change models.Change, key string, fn func() error) error {
	l.mu.Lock()
	err := fn()
	l.mu.Unlock()

	if err != nil {
		l.logger.Warn(op+" failed",
			"library", l.name,
			"key", key,
			"kind", models.KindOf(err).String(),
			"error", err,
		)
		return err
	}

	l.logger.Debug(op+" succeeded", "library", l.name, "key", key)
	l.bus.Publish(l.name, change)
	return nil
}

// AddAuthor registers p as an author.
func (l *Library) AddAuthor(p *models.Person) error {
	key := ""
	if p != nil {
		key = p.Email
	}
	return l.mutate("AddAuthor", models.Change{Type: models.ChangeAdd, Domain: models.DomainAuthor}, key, func() error {
		return l.reg.AddAuthor(p)
	})
}

// AddMember creates a member and registers it.
func (l *Library) AddMember(email, firstName, lastName string, status models.Status) error {
	return l.Enroll(models.NewMember(email, firstName, lastName, status))
}

// Enroll registers an already built member.
func (l *Library) Enroll(m *models.Member) error {
	key := ""
	if m != nil {
		key = m.Email
	}
	return l.mutate("AddMember", models.Change{Type: models.ChangeAdd, Domain: models.DomainMember}, key, func() error {
		return l.reg.AddMember(m)
	})
}

// AddBook creates a book by the registered author with the given email and
// adds it. Nothing is added if the author is unknown.
func (l *Library) AddBook(isbn, title, authorEmail string) error {
	return l.mutate("AddBook", models.Change{Type: models.ChangeAdd, Domain: models.DomainDocument}, isbn, func() error {
		author, err := l.reg.Author(authorEmail)
		if err != nil {
			return err
		}
		return l.reg.AddDocument(models.NewBook(isbn, title, author))
	})
}

// AddBookBy creates a book by author and adds it. The author does not need
// to be registered.
func (l *Library) AddBookBy(isbn, title string, author *models.Person) error {
	return l.AddDocument(models.NewBook(isbn, title, author))
}

// AddDocument adds an already built document.
func (l *Library) AddDocument(d models.Document) error {
	key := ""
	if !models.IsNil(d) {
		key = d.ISBN()
	}
	return l.mutate("AddDocument", models.Change{Type: models.ChangeAdd, Domain: models.DomainDocument}, key, func() error {
		return l.reg.AddDocument(d)
	})
}

// AddLaptop creates a laptop, adds it and returns its id.
func (l *Library) AddLaptop(brand string, os models.OS) (int, error) {
	return l.AddEquipment(models.NewLaptop(brand, os))
}

// AddEquipment adds an already built piece of equipment and returns the id
// the registry assigned to it.
func (l *Library) AddEquipment(e models.Equipment) (int, error) {
	var id int
	err := l.mutate("AddEquipment", models.Change{Type: models.ChangeAdd, Domain: models.DomainEquipment}, "", func() error {
		var err error
		id, err = l.reg.AddEquipment(e)
		return err
	})
	return id, err
}

// RemoveAuthor deletes an author. Books already written by them keep their
// author reference.
func (l *Library) RemoveAuthor(email string) error {
	return l.mutate("RemoveAuthor", models.Change{Type: models.ChangeRemove, Domain: models.DomainAuthor}, email, func() error {
		return l.reg.RemoveAuthor(email)
	})
}

// RemoveMember deletes a member. Items they have on loan stay on loan.
func (l *Library) RemoveMember(email string) error {
	return l.mutate("RemoveMember", models.Change{Type: models.ChangeRemove, Domain: models.DomainMember}, email, func() error {
		return l.reg.RemoveMember(email)
	})
}

// RemoveDocument deletes a document. If it is on loan, the loan is closed
// and the document leaves the library available.
func (l *Library) RemoveDocument(isbn string) error {
	return l.mutate("RemoveDocument", models.Change{Type: models.ChangeRemove, Domain: models.DomainDocument}, isbn, func() error {
		doc, err := l.reg.Document(isbn)
		if err != nil {
			return err
		}
		if err := l.release(doc); err != nil {
			return err
		}
		return l.reg.RemoveDocument(isbn)
	})
}

// RemoveEquipment deletes a piece of equipment. If it is on loan, the loan
// is closed first. The removed item loses its id.
func (l *Library) RemoveEquipment(id int) error {
	return l.mutate("RemoveEquipment", models.Change{Type: models.ChangeRemove, Domain: models.DomainEquipment}, strconv.Itoa(id), func() error {
		item, err := l.reg.Equipment(id)
		if err != nil {
			return err
		}
		if err := l.release(item); err != nil {
			return err
		}
		return l.reg.RemoveEquipment(id)
	})
}

// release closes the open loan of item, if any, so its state and the loan
// records agree. It runs before the registry forgets the item, while its
// key is still valid.
func (l *Library) release(item models.Lendable) error {
	if item.LoanState().OnLoan() {
		if err := item.Return(); err != nil {
			return models.WithKey(err, item.LendableKey())
		}
	}
	l.lender.Discard(item)
	return nil
}

var (
	loanAdded   = models.Change{Type: models.ChangeAdd, Domain: models.DomainLoan}
	loanRemoved = models.Change{Type: models.ChangeRemove, Domain: models.DomainLoan}
)

// BorrowDocument lends the document with the given ISBN to a member.
func (l *Library) BorrowDocument(email, isbn string) (*models.Loan, error) {
	var loan *models.Loan
	err := l.mutate("BorrowDocument", loanAdded, models.DocumentKey(isbn), func() error {
		var err error
		loan, err = l.lender.BorrowDocument(email, isbn)
		return err
	})
	return loan, err
}

// BorrowEquipment lends the equipment with the given id to a member.
func (l *Library) BorrowEquipment(email string, id int) (*models.Loan, error) {
	var loan *models.Loan
	err := l.mutate("BorrowEquipment", loanAdded, models.EquipmentKey(id), func() error {
		var err error
		loan, err = l.lender.BorrowEquipment(email, id)
		return err
	})
	return loan, err
}

// Borrow lends a registered item to a registered member.
func (l *Library) Borrow(member *models.Member, item models.Lendable) (*models.Loan, error) {
	var loan *models.Loan
	err := l.mutate("Borrow", loanAdded, lendableKey(item), func() error {
		var err error
		loan, err = l.lender.Borrow(member, item)
		return err
	})
	return loan, err
}

// ReturnDocument takes back the document with the given ISBN.
func (l *Library) ReturnDocument(isbn string) error {
	return l.mutate("ReturnDocument", loanRemoved, models.DocumentKey(isbn), func() error {
		_, err := l.lender.ReturnDocument(isbn)
		return err
	})
}

// ReturnEquipment takes back the equipment with the given id.
func (l *Library) ReturnEquipment(id int) error {
	return l.mutate("ReturnEquipment", loanRemoved, models.EquipmentKey(id), func() error {
		_, err := l.lender.ReturnEquipment(id)
		return err
	})
}

// Return takes back a registered item.
func (l *Library) Return(item models.Lendable) error {
	return l.mutate("Return", loanRemoved, lendableKey(item), func() error {
		_, err := l.lender.Return(item)
		return err
	})
}

func lendableKey(item models.Lendable) string {
	if models.IsNil(item) {
		return ""
	}
	return item.LendableKey()
}
