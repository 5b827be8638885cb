package models

import "fmt"

// Document is a catalogued item keyed by ISBN. Every document is Lendable.
type Document interface {
	Lendable

	ISBN() string
	Title() string
	Author() *Person
}

// Book is the only concrete Document.
type Book struct {
	Loanable

	isbn   string
	title  string
	author *Person
}

var _ Document = (*Book)(nil)

// NewBook builds a Book. The book is not part of any library until it is
// added explicitly.
func NewBook(isbn, title string, author *Person) *Book {
	return &Book{isbn: isbn, title: title, author: author}
}

func (b *Book) ISBN() string    { return b.isbn }
func (b *Book) Title() string   { return b.title }
func (b *Book) Author() *Person { return b.author }

// LendableKey implements Lendable.
func (b *Book) LendableKey() string {
	return DocumentKey(b.isbn)
}

func (b *Book) String() string {
	return fmt.Sprintf("Book{isbn=%s, title=%q, state=%s}", b.isbn, b.title, b.LoanState())
}

// DocumentKey is the LendableKey of the document with the given ISBN.
func DocumentKey(isbn string) string {
	return "document:" + isbn
}
