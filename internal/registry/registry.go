// Package registry provides the keyed in-memory stores of a library:
// authors and members by email, documents by ISBN, equipment by a
// registry-assigned id.
package registry

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/biblio/internal/models"
)

// Registry stores every entity of one library.
// Lookups return the stored values; listings return fresh slices so
// callers cannot change what the registry holds.
type Registry struct {
	validate *validator.Validate

	authors   table[string, *models.Person]
	members   table[string, *models.Member]
	documents table[string, models.Document]
	equipment table[int, models.Equipment]

	lastEquipmentID int
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		validate:  validator.New(),
		authors:   newTable[string, *models.Person](),
		members:   newTable[string, *models.Member](),
		documents: newTable[string, models.Document](),
		equipment: newTable[int, models.Equipment](),
	}
}

// documentInput is what a Document must carry to be registered.
type documentInput struct {
	ISBN   string         `validate:"required"`
	Title  string         `validate:"required"`
	Author *models.Person `validate:"required"`
}

func (r *Registry) check(v any, key string) error {
	if err := r.validate.Struct(v); err != nil {
		return &models.Error{Kind: models.KindInvalidArgument, Key: key, Err: err}
	}
	return nil
}

// checkEmail rejects emails that are not in the form used as keys, so the
// stored person and its key never disagree.
func checkEmail(email string) error {
	if key := models.NormalizeEmail(email); key != email {
		return &models.Error{
			Kind: models.KindInvalidArgument,
			Key:  email,
			Err:  fmt.Errorf("email must be normalized as %q", key),
		}
	}
	return nil
}

// AddAuthor registers a person as an author.
func (r *Registry) AddAuthor(p *models.Person) error {
	if p == nil {
		return &models.Error{Kind: models.KindInvalidArgument, Err: fmt.Errorf("author is required")}
	}
	if err := checkEmail(p.Email); err != nil {
		return err
	}
	key := p.Email
	if err := r.check(p, key); err != nil {
		return err
	}
	if r.authors.has(key) {
		return &models.Error{Kind: models.KindDuplicateKey, Key: key}
	}
	r.authors.put(key, p)
	return nil
}

// AddMember registers a member.
func (r *Registry) AddMember(m *models.Member) error {
	if m == nil {
		return &models.Error{Kind: models.KindInvalidArgument, Err: fmt.Errorf("member is required")}
	}
	if err := checkEmail(m.Email); err != nil {
		return err
	}
	key := m.Email
	if err := r.check(m, key); err != nil {
		return err
	}
	if r.members.has(key) {
		return &models.Error{Kind: models.KindDuplicateKey, Key: key}
	}
	r.members.put(key, m)
	return nil
}

// AddDocument registers a document under its ISBN.
func (r *Registry) AddDocument(d models.Document) error {
	if models.IsNil(d) {
		return &models.Error{Kind: models.KindInvalidArgument, Err: fmt.Errorf("document is required")}
	}
	in := documentInput{ISBN: d.ISBN(), Title: d.Title(), Author: d.Author()}
	if err := r.check(in, d.ISBN()); err != nil {
		return err
	}
	if r.documents.has(d.ISBN()) {
		return &models.Error{Kind: models.KindDuplicateKey, Key: d.ISBN()}
	}
	r.documents.put(d.ISBN(), d)
	return nil
}

// AddEquipment registers a piece of equipment and returns the id assigned
// to it. Ids start at 1 and are never reused.
func (r *Registry) AddEquipment(e models.Equipment) (int, error) {
	if models.IsNil(e) {
		return 0, &models.Error{Kind: models.KindInvalidArgument, Err: fmt.Errorf("equipment is required")}
	}
	if id := e.ID(); id != 0 {
		if stored, ok := r.equipment.get(id); ok && stored == e {
			return 0, &models.Error{Kind: models.KindDuplicateKey, Key: strconv.Itoa(id)}
		}
	}
	if err := r.check(e, ""); err != nil {
		return 0, err
	}
	id := r.lastEquipmentID + 1
	if err := models.AssignID(e, id); err != nil {
		return 0, err
	}
	r.lastEquipmentID = id
	r.equipment.put(id, e)
	return id, nil
}

// Author returns the author with the given email.
func (r *Registry) Author(email string) (*models.Person, error) {
	email = models.NormalizeEmail(email)
	p, ok := r.authors.get(email)
	if !ok {
		return nil, models.NotFound(models.DomainAuthor, email)
	}
	return p, nil
}

// Member returns the member with the given email.
func (r *Registry) Member(email string) (*models.Member, error) {
	email = models.NormalizeEmail(email)
	m, ok := r.members.get(email)
	if !ok {
		return nil, models.NotFound(models.DomainMember, email)
	}
	return m, nil
}

// Document returns the document with the given ISBN.
func (r *Registry) Document(isbn string) (models.Document, error) {
	d, ok := r.documents.get(isbn)
	if !ok {
		return nil, models.NotFound(models.DomainDocument, isbn)
	}
	return d, nil
}

// Equipment returns the equipment with the given id.
func (r *Registry) Equipment(id int) (models.Equipment, error) {
	e, ok := r.equipment.get(id)
	if !ok {
		return nil, models.NotFound(models.DomainEquipment, strconv.Itoa(id))
	}
	return e, nil
}

// RemoveAuthor deletes the author with the given email.
func (r *Registry) RemoveAuthor(email string) error {
	email = models.NormalizeEmail(email)
	if !r.authors.delete(email) {
		return models.NotFound(models.DomainAuthor, email)
	}
	return nil
}

// RemoveMember deletes the member with the given email.
func (r *Registry) RemoveMember(email string) error {
	email = models.NormalizeEmail(email)
	if !r.members.delete(email) {
		return models.NotFound(models.DomainMember, email)
	}
	return nil
}

// RemoveDocument deletes the document with the given ISBN.
func (r *Registry) RemoveDocument(isbn string) error {
	if !r.documents.delete(isbn) {
		return models.NotFound(models.DomainDocument, isbn)
	}
	return nil
}

// RemoveEquipment deletes the equipment with the given id. The removed item
// loses its id and may be added again under a new one.
func (r *Registry) RemoveEquipment(id int) error {
	e, ok := r.equipment.get(id)
	if !ok {
		return models.NotFound(models.DomainEquipment, strconv.Itoa(id))
	}
	r.equipment.delete(id)
	models.ClearID(e)
	return nil
}

// AuthorIDs returns the emails of all authors, sorted.
func (r *Registry) AuthorIDs() []string { return r.authors.keys() }

// MemberIDs returns the emails of all members, sorted.
func (r *Registry) MemberIDs() []string { return r.members.keys() }

// DocumentIDs returns the ISBNs of all documents, sorted.
func (r *Registry) DocumentIDs() []string { return r.documents.keys() }

// EquipmentIDs returns the ids of all equipment, sorted.
func (r *Registry) EquipmentIDs() []int { return r.equipment.keys() }

// Authors returns all authors in insertion order.
func (r *Registry) Authors() []*models.Person { return r.authors.values() }

// Members returns all members in insertion order.
func (r *Registry) Members() []*models.Member { return r.members.values() }

// Documents returns all documents in insertion order.
func (r *Registry) Documents() []models.Document { return r.documents.values() }

// AllEquipment returns all equipment in insertion order.
func (r *Registry) AllEquipment() []models.Equipment { return r.equipment.values() }

// Counts returns the number of entries per domain.
func (r *Registry) Counts() map[models.Domain]int {
	return map[models.Domain]int{
		models.DomainAuthor:    r.authors.len(),
		models.DomainMember:    r.members.len(),
		models.DomainDocument:  r.documents.len(),
		models.DomainEquipment: r.equipment.len(),
	}
}
