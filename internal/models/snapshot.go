package models

// Snapshot is a value copy of a library's state, taken for export.
// It holds no references into the live library.
type Snapshot struct {
	// Library is the name of the exported library.
	Library string `json:"library"`

	// TakenAt is the Unix timestamp when the snapshot was taken.
	TakenAt int64 `json:"taken_at"`

	Authors   []PersonRecord    `json:"authors"`
	Members   []MemberRecord    `json:"members"`
	Documents []DocumentRecord  `json:"documents"`
	Equipment []EquipmentRecord `json:"equipment"`

	// Loans are the loans open at TakenAt.
	Loans []LoanRecord `json:"loans"`
}

// PersonRecord is the exported form of a Person.
type PersonRecord struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// MemberRecord is the exported form of a Member.
type MemberRecord struct {
	PersonRecord
	Status Status `json:"status"`
}

// DocumentRecord is the exported form of a Document.
type DocumentRecord struct {
	Kind        string `json:"kind"`
	ISBN        string `json:"isbn"`
	Title       string `json:"title"`
	AuthorEmail string `json:"author_email"`
}

// EquipmentRecord is the exported form of a piece of Equipment.
type EquipmentRecord struct {
	Kind  string `json:"kind"`
	ID    int    `json:"id"`
	Brand string `json:"brand,omitempty"`
	OS    OS     `json:"os,omitempty"`
}

// LoanRecord is the exported form of an open Loan.
type LoanRecord struct {
	ID          string `json:"id"`
	MemberEmail string `json:"member_email"`
	ItemKey     string `json:"item_key"`

	// Since is the Unix timestamp when the loan started.
	Since int64 `json:"since"`
}

// RecordOfPerson converts p to its exported form.
func RecordOfPerson(p *Person) PersonRecord {
	return PersonRecord{Email: p.Email, FirstName: p.FirstName, LastName: p.LastName}
}

// RecordOfMember converts m to its exported form.
func RecordOfMember(m *Member) MemberRecord {
	return MemberRecord{PersonRecord: RecordOfPerson(&m.Person), Status: m.Status}
}

// RecordOfDocument converts d to its exported form.
func RecordOfDocument(d Document) DocumentRecord {
	rec := DocumentRecord{ISBN: d.ISBN(), Title: d.Title(), Kind: "document"}
	if d.Author() != nil {
		rec.AuthorEmail = d.Author().Email
	}
	if _, ok := d.(*Book); ok {
		rec.Kind = "book"
	}
	return rec
}

// RecordOfEquipment converts e to its exported form.
func RecordOfEquipment(e Equipment) EquipmentRecord {
	rec := EquipmentRecord{ID: e.ID(), Kind: "equipment"}
	if l, ok := e.(*Laptop); ok {
		rec.Kind = "laptop"
		rec.Brand = l.Brand
		rec.OS = l.OS
	}
	return rec
}

// RecordOfLoan converts l to its exported form.
func RecordOfLoan(l *Loan) LoanRecord {
	return LoanRecord{
		ID:          l.ID,
		MemberEmail: l.Member.Email,
		ItemKey:     l.Item.LendableKey(),
		Since:       l.Since.Unix(),
	}
}
