package models

import (
	"fmt"
	"strings"
)

// Person is an identity keyed by email.
// Persons are immutable once created.
type Person struct {
	// Email is the unique identifier of the person.
	Email string `json:"email" validate:"required,email"`

	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// NewPerson builds a Person. The email is trimmed and lower-cased so lookups
// are insensitive to how callers typed it.
func NewPerson(email, firstName, lastName string) *Person {
	return &Person{
		Email:     NormalizeEmail(email),
		FirstName: firstName,
		LastName:  lastName,
	}
}

// NormalizeEmail returns the canonical form of an email used as a key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ID returns the registry key of the person.
func (p *Person) ID() string {
	return p.Email
}

func (p *Person) String() string {
	return fmt.Sprintf("%s %s <%s>", p.FirstName, p.LastName, p.Email)
}

// Status is the membership category of a Member.
//
// The status does not alter borrowing rules.
type Status string

const (
	StatusTeacher Status = "TEACHER"
	StatusStudent Status = "STUDENT"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusTeacher || s == StatusStudent
}

// Member is a Person registered to borrow items.
// Members are unique by the underlying person's email and never change
// after creation.
type Member struct {
	Person

	Status Status `json:"status" validate:"required,oneof=TEACHER STUDENT"`
}

// NewMember builds a Member from its identity and status.
func NewMember(email, firstName, lastName string, status Status) *Member {
	return &Member{
		Person: *NewPerson(email, firstName, lastName),
		Status: status,
	}
}

func (m *Member) String() string {
	return fmt.Sprintf("%s [%s]", m.Person.String(), m.Status)
}
