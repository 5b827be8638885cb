package models

import (
	"fmt"
	"time"
)

// LoanState describes whether an item is available or on loan.
// The zero value is Available.
type LoanState struct {
	// Borrower is nil while the item is available.
	Borrower *Member

	// Since is when the current loan started. Zero while available.
	Since time.Time
}

// OnLoan reports whether the state is OnLoan.
func (s LoanState) OnLoan() bool {
	return s.Borrower != nil
}

func (s LoanState) String() string {
	if !s.OnLoan() {
		return "Available"
	}
	return fmt.Sprintf("OnLoan(%s, %s)", s.Borrower.Email, s.Since.Format(time.RFC3339))
}

// Lendable is implemented by every entity that can be borrowed.
type Lendable interface {
	// LendableKey identifies the item across domains, e.g. "document:123-XY".
	LendableKey() string

	// LoanState returns a copy of the current state.
	LoanState() LoanState

	// Borrow moves the item to OnLoan(member, at).
	// It fails with a NotLendable error if the item is already on loan.
	Borrow(member *Member, at time.Time) error

	// Return moves the item back to Available.
	// It fails with a NotLendable error if the item is not on loan.
	Return() error
}

// Loanable holds the loan state of a single item. Embed it to make a type
// Lendable.
type Loanable struct {
	state LoanState
}

// LoanState returns a copy of the current state.
func (l *Loanable) LoanState() LoanState {
	return l.state
}

// Borrow is legal only from Available.
func (l *Loanable) Borrow(member *Member, at time.Time) error {
	if member == nil {
		return &Error{Kind: KindInvalidArgument, Err: fmt.Errorf("borrower is required")}
	}
	if l.state.OnLoan() {
		return &Error{
			Kind: KindNotLendable,
			Err:  fmt.Errorf("already on loan to %s", l.state.Borrower.Email),
		}
	}
	l.state = LoanState{Borrower: member, Since: at}
	return nil
}

// Return is legal only from OnLoan.
func (l *Loanable) Return() error {
	if !l.state.OnLoan() {
		return &Error{Kind: KindNotLendable, Err: fmt.Errorf("not on loan")}
	}
	l.state = LoanState{}
	return nil
}

// Loan links a Member to a Lendable while the item is on loan.
type Loan struct {
	// ID is the unique identifier for the loan (UUID format).
	ID string

	Member *Member
	Item   Lendable
	Since  time.Time
}

// IsNil reports whether item is nil, including a nil *Book or *Laptop held
// in the interface.
func IsNil(item Lendable) bool {
	switch it := item.(type) {
	case nil:
		return true
	case *Book:
		return it == nil
	case *Laptop:
		return it == nil
	}
	return false
}
