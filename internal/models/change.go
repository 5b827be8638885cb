package models

import "fmt"

// ChangeType is the kind of mutation a Change reports.
type ChangeType string

const (
	ChangeAdd    ChangeType = "ADD"
	ChangeRemove ChangeType = "REMOVE"
	ChangeUpdate ChangeType = "UPDATE"
)

// Domain is the part of the library a Change applies to.
type Domain string

const (
	DomainDocument  Domain = "DOCUMENT"
	DomainEquipment Domain = "EQUIPMENT"
	DomainMember    Domain = "MEMBER"
	DomainAuthor    Domain = "AUTHOR"
	DomainLoan      Domain = "LOAN"
)

// Change is published after every successful mutation of a library.
type Change struct {
	Type   ChangeType
	Domain Domain
}

func (c Change) String() string {
	return fmt.Sprintf("Change{type=%s, domain=%s}", c.Type, c.Domain)
}
