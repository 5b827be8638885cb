package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/biblio/internal/models"
)

func TestChainStopsAtFirstError(t *testing.T) {
	lib, log := newTestLibrary(t)

	err := lib.Chain().
		AddAuthor(models.NewPerson("marie.durand@test.fr", "marie", "durand")).
		AddMember("pierre.dupond@test.fr", "pierre", "dupond", models.StatusTeacher).
		AddLaptop("Vaio", models.OSLinux).
		AddBook("123-XY", "Mon livre 1", "jean.martin@test.fr").
		AddBook("A", "Mon livre A", "marie.durand@test.fr").
		Err()

	assert.ErrorIs(t, err, models.ErrAuthorNotFound)
	assert.Len(t, log.changes, 3)
	assert.Empty(t, lib.DocumentIDs())
}

func TestChainFullDemo(t *testing.T) {
	lib, log := newTestLibrary(t)

	err := lib.Chain().
		AddAuthor(models.NewPerson("marie.durand@test.fr", "marie", "durand")).
		AddAuthor(models.NewPerson("jean.martin@test.fr", "jean", "martin")).
		AddMember("pierre.dupond@test.fr", "pierre", "dupond", models.StatusTeacher).
		AddMember("marc.durand@test.fr", "marc", "durand", models.StatusStudent).
		AddLaptop("Vaio", models.OSLinux).
		AddLaptop("Dell", models.OSWindows).
		AddLaptop("Macbook Pro", models.OSMacOS).
		AddBook("123-XY", "Mon livre 1", "marie.durand@test.fr").
		AddBook("A", "Mon livre 1", "marie.durand@test.fr").
		BorrowEquipment("marc.durand@test.fr", 2).
		BorrowDocument("pierre.dupond@test.fr", "A").
		ReturnEquipment(2).
		ReturnDocument("A").
		Err()

	require.NoError(t, err)
	assert.Len(t, log.changes, 13)
	assert.Equal(t, []int{1, 2, 3}, lib.EquipmentIDs())
	assert.Empty(t, lib.Loans())
}

func TestChainValueOperations(t *testing.T) {
	lib, log := newTestLibrary(t)
	author := models.NewPerson("w@x.com", "W", "X")
	member := models.NewMember("m@x.com", "M", "N", models.StatusStudent)
	book := models.NewBook("B", "Livre", author)
	laptop := models.NewLaptop("Dell", models.OSWindows)

	err := lib.Chain().
		AddBookBy("A", "Livre A", author).
		Enroll(member).
		AddDocument(book).
		AddEquipment(laptop).
		Borrow(member, book).
		Return(book).
		RemoveEquipment(1).
		RemoveDocument("A").
		RemoveMember("m@x.com").
		Err()
	require.NoError(t, err)
	assert.Len(t, log.changes, 9)

	err = lib.Chain().RemoveAuthor("w@x.com").Err()
	assert.ErrorIs(t, err, models.ErrAuthorNotFound)
}
