package library

import "github.com/mmynk/biblio/internal/models"

// Chain applies a sequence of mutations and stops at the first failure.
//
//	err := lib.Chain().
//		AddAuthor(models.NewPerson("marie.durand@test.fr", "marie", "durand")).
//		AddMember("pierre.dupond@test.fr", "pierre", "dupond", models.StatusTeacher).
//		AddBook("123-XY", "Mon livre 1", "marie.durand@test.fr").
//		Err()
//
// Once a step fails, later steps are skipped and publish nothing.
type Chain struct {
	lib *Library
	err error
}

// Chain starts a chain of mutations on l.
func (l *Library) Chain() *Chain {
	return &Chain{lib: l}
}

// Err returns the first error of the chain, or nil.
func (c *Chain) Err() error {
	return c.err
}

func (c *Chain) do(fn func() error) *Chain {
	if c.err == nil {
		c.err = fn()
	}
	return c
}

func (c *Chain) AddAuthor(p *models.Person) *Chain {
	return c.do(func() error { return c.lib.AddAuthor(p) })
}

func (c *Chain) AddMember(email, firstName, lastName string, status models.Status) *Chain {
	return c.do(func() error { return c.lib.AddMember(email, firstName, lastName, status) })
}

func (c *Chain) Enroll(m *models.Member) *Chain {
	return c.do(func() error { return c.lib.Enroll(m) })
}

func (c *Chain) AddBook(isbn, title, authorEmail string) *Chain {
	return c.do(func() error { return c.lib.AddBook(isbn, title, authorEmail) })
}

func (c *Chain) AddBookBy(isbn, title string, author *models.Person) *Chain {
	return c.do(func() error { return c.lib.AddBookBy(isbn, title, author) })
}

func (c *Chain) AddDocument(d models.Document) *Chain {
	return c.do(func() error { return c.lib.AddDocument(d) })
}

func (c *Chain) AddLaptop(brand string, os models.OS) *Chain {
	return c.do(func() error {
		_, err := c.lib.AddLaptop(brand, os)
		return err
	})
}

func (c *Chain) AddEquipment(e models.Equipment) *Chain {
	return c.do(func() error {
		_, err := c.lib.AddEquipment(e)
		return err
	})
}

func (c *Chain) RemoveAuthor(email string) *Chain {
	return c.do(func() error { return c.lib.RemoveAuthor(email) })
}

func (c *Chain) RemoveMember(email string) *Chain {
	return c.do(func() error { return c.lib.RemoveMember(email) })
}

func (c *Chain) RemoveDocument(isbn string) *Chain {
	return c.do(func() error { return c.lib.RemoveDocument(isbn) })
}

func (c *Chain) RemoveEquipment(id int) *Chain {
	return c.do(func() error { return c.lib.RemoveEquipment(id) })
}

func (c *Chain) BorrowDocument(email, isbn string) *Chain {
	return c.do(func() error {
		_, err := c.lib.BorrowDocument(email, isbn)
		return err
	})
}

func (c *Chain) BorrowEquipment(email string, id int) *Chain {
	return c.do(func() error {
		_, err := c.lib.BorrowEquipment(email, id)
		return err
	})
}

func (c *Chain) Borrow(member *models.Member, item models.Lendable) *Chain {
	return c.do(func() error {
		_, err := c.lib.Borrow(member, item)
		return err
	})
}

func (c *Chain) ReturnDocument(isbn string) *Chain {
	return c.do(func() error { return c.lib.ReturnDocument(isbn) })
}

func (c *Chain) ReturnEquipment(id int) *Chain {
	return c.do(func() error { return c.lib.ReturnEquipment(id) })
}

func (c *Chain) Return(item models.Lendable) *Chain {
	return c.do(func() error { return c.lib.Return(item) })
}
