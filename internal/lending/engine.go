// Package lending orchestrates borrowing and returning across the registry
// and the items' loan state.
package lending

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/biblio/internal/models"
)

// Directory resolves the entities a loan involves.
// *registry.Registry satisfies it.
type Directory interface {
	Member(email string) (*models.Member, error)
	Document(isbn string) (models.Document, error)
	Equipment(id int) (models.Equipment, error)
}

// Policy decides whether member may borrow item. A non-nil error rejects
// the loan with a BorrowFailed error wrapping it.
type Policy func(member *models.Member, item models.Lendable) error

// Engine validates and applies borrow and return operations.
//
// Every operation checks all its preconditions before changing anything,
// so a failed call leaves items and loans as they were.
type Engine struct {
	dir    Directory
	now    func() time.Time
	newID  func() string
	policy Policy

	loans map[string]*models.Loan
	order []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used to stamp loans.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithPolicy installs an eligibility check run before every borrow.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// NewEngine creates an Engine resolving entities through dir.
func NewEngine(dir Directory, opts ...Option) *Engine {
	e := &Engine{
		dir:   dir,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
		loans: make(map[string]*models.Loan),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BorrowDocument lends the document with the given ISBN to the member with
// the given email.
func (e *Engine) BorrowDocument(email, isbn string) (*models.Loan, error) {
	member, err := e.dir.Member(email)
	if err != nil {
		return nil, err
	}
	doc, err := e.dir.Document(isbn)
	if err != nil {
		return nil, err
	}
	return e.lend(member, doc)
}

// BorrowEquipment lends the equipment with the given id to the member with
// the given email.
func (e *Engine) BorrowEquipment(email string, id int) (*models.Loan, error) {
	member, err := e.dir.Member(email)
	if err != nil {
		return nil, err
	}
	item, err := e.dir.Equipment(id)
	if err != nil {
		return nil, err
	}
	return e.lend(member, item)
}

// Borrow lends item to member. Both must be registered.
func (e *Engine) Borrow(member *models.Member, item models.Lendable) (*models.Loan, error) {
	if member == nil {
		return nil, &models.Error{Kind: models.KindInvalidArgument, Err: fmt.Errorf("member is required")}
	}
	registered, err := e.dir.Member(member.Email)
	if err != nil {
		return nil, err
	}
	if registered != member {
		return nil, models.NotFound(models.DomainMember, member.Email)
	}
	item, err = e.resolve(item)
	if err != nil {
		return nil, err
	}
	return e.lend(member, item)
}

func (e *Engine) lend(member *models.Member, item models.Lendable) (*models.Loan, error) {
	key := item.LendableKey()
	if item.LoanState().OnLoan() {
		return nil, models.WithKey(&models.Error{
			Kind: models.KindNotLendable,
			Err:  fmt.Errorf("already on loan to %s", item.LoanState().Borrower.Email),
		}, key)
	}
	if e.policy != nil {
		if err := e.policy(member, item); err != nil {
			return nil, &models.Error{Kind: models.KindBorrowFailed, Key: key, Err: err}
		}
	}

	at := e.now()
	if err := item.Borrow(member, at); err != nil {
		return nil, models.WithKey(err, key)
	}

	loan := &models.Loan{ID: e.newID(), Member: member, Item: item, Since: at}
	e.loans[key] = loan
	e.order = append(e.order, key)
	return loan, nil
}

// ReturnDocument takes back the document with the given ISBN.
func (e *Engine) ReturnDocument(isbn string) (*models.Loan, error) {
	doc, err := e.dir.Document(isbn)
	if err != nil {
		return nil, err
	}
	return e.takeBack(doc)
}

// ReturnEquipment takes back the equipment with the given id.
func (e *Engine) ReturnEquipment(id int) (*models.Loan, error) {
	item, err := e.dir.Equipment(id)
	if err != nil {
		return nil, err
	}
	return e.takeBack(item)
}

// Return takes back item, which must be registered.
func (e *Engine) Return(item models.Lendable) (*models.Loan, error) {
	item, err := e.resolve(item)
	if err != nil {
		return nil, err
	}
	return e.takeBack(item)
}

func (e *Engine) takeBack(item models.Lendable) (*models.Loan, error) {
	key := item.LendableKey()
	if err := item.Return(); err != nil {
		return nil, models.WithKey(err, key)
	}
	loan := e.loans[key]
	e.Discard(item)
	return loan, nil
}

// resolve returns the registered instance behind item, failing with the
// domain's not-found error when item is not the one the directory holds.
func (e *Engine) resolve(item models.Lendable) (models.Lendable, error) {
	if models.IsNil(item) {
		return nil, &models.Error{Kind: models.KindInvalidArgument, Err: fmt.Errorf("item is required")}
	}
	switch it := item.(type) {
	case models.Document:
		stored, err := e.dir.Document(it.ISBN())
		if err != nil {
			return nil, err
		}
		if stored != it {
			return nil, models.NotFound(models.DomainDocument, it.ISBN())
		}
		return stored, nil
	case models.Equipment:
		stored, err := e.dir.Equipment(it.ID())
		if err != nil {
			return nil, err
		}
		if stored != it {
			return nil, models.NotFound(models.DomainEquipment, strconv.Itoa(it.ID()))
		}
		return stored, nil
	default:
		return nil, &models.Error{
			Kind: models.KindInvalidArgument,
			Key:  item.LendableKey(),
			Err:  fmt.Errorf("unsupported lendable %T", item),
		}
	}
}

// Discard drops the loan record of item, if any. It does not touch the
// item's state.
func (e *Engine) Discard(item models.Lendable) {
	key := item.LendableKey()
	if _, ok := e.loans[key]; !ok {
		return
	}
	delete(e.loans, key)
	if i := slices.Index(e.order, key); i >= 0 {
		e.order = slices.Delete(e.order, i, i+1)
	}
}

// LoanOf returns the open loan of item, or nil.
func (e *Engine) LoanOf(item models.Lendable) *models.Loan {
	return e.loans[item.LendableKey()]
}

// Loans returns the open loans in the order they were made.
func (e *Engine) Loans() []*models.Loan {
	out := make([]*models.Loan, 0, len(e.order))
	for _, key := range e.order {
		out = append(out, e.loans[key])
	}
	return out
}
