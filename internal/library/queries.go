package library

import "github.com/mmynk/biblio/internal/models"

// Author returns the author with the given email.
func (l *Library) Author(email string) (*models.Person, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Author(email)
}

// Member returns the member with the given email.
func (l *Library) Member(email string) (*models.Member, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Member(email)
}

// Document returns the document with the given ISBN.
func (l *Library) Document(isbn string) (models.Document, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Document(isbn)
}

// Equipment returns the equipment with the given id.
func (l *Library) Equipment(id int) (models.Equipment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Equipment(id)
}

func (l *Library) AuthorIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.AuthorIDs()
}

func (l *Library) MemberIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.MemberIDs()
}

func (l *Library) DocumentIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.DocumentIDs()
}

func (l *Library) EquipmentIDs() []int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.EquipmentIDs()
}

func (l *Library) Authors() []*models.Person {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Authors()
}

func (l *Library) Members() []*models.Member {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Members()
}

func (l *Library) Documents() []models.Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.Documents()
}

func (l *Library) AllEquipment() []models.Equipment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reg.AllEquipment()
}

// Loans returns the open loans in the order they were made.
func (l *Library) Loans() []*models.Loan {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lender.Loans()
}

// LoanOf returns the open loan of item, or nil.
func (l *Library) LoanOf(item models.Lendable) *models.Loan {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lender.LoanOf(item)
}
