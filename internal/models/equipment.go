package models

import (
	"fmt"
	"strconv"
)

// Equipment is a piece of hardware keyed by a registry-assigned id.
// Every piece of equipment is Lendable.
type Equipment interface {
	Lendable

	// ID returns the registry-assigned id, or 0 before registration.
	ID() int

	assign(id int)
}

// OS is the operating system installed on a Laptop.
type OS string

const (
	OSLinux   OS = "LINUX"
	OSWindows OS = "WINDOWS"
	OSMacOS   OS = "MACOS"
)

// equipmentBase carries the id shared by all equipment.
type equipmentBase struct {
	id int
}

func (e *equipmentBase) ID() int { return e.id }

func (e *equipmentBase) assign(id int) { e.id = id }

// AssignID gives e its registry id. It fails if e already has one, so an
// item can only ever belong to one registry slot.
func AssignID(e Equipment, id int) error {
	if e.ID() != 0 {
		return &Error{
			Kind: KindInvalidArgument,
			Key:  strconv.Itoa(e.ID()),
			Err:  fmt.Errorf("equipment already has an id"),
		}
	}
	e.assign(id)
	return nil
}

// ClearID detaches e from its registry slot so it can be registered again
// under a fresh id.
func ClearID(e Equipment) {
	e.assign(0)
}

// Laptop is the only concrete Equipment.
type Laptop struct {
	Loanable
	equipmentBase

	Brand string `validate:"required"`
	OS    OS     `validate:"required,oneof=LINUX WINDOWS MACOS"`
}

var _ Equipment = (*Laptop)(nil)

// NewLaptop builds an unregistered Laptop.
func NewLaptop(brand string, os OS) *Laptop {
	return &Laptop{Brand: brand, OS: os}
}

// LendableKey implements Lendable.
func (l *Laptop) LendableKey() string {
	return EquipmentKey(l.ID())
}

func (l *Laptop) String() string {
	return fmt.Sprintf("Laptop{id=%d, brand=%s, os=%s, state=%s}", l.ID(), l.Brand, l.OS, l.LoanState())
}

// EquipmentKey is the LendableKey of the equipment with the given id.
func EquipmentKey(id int) string {
	return "equipment:" + strconv.Itoa(id)
}
