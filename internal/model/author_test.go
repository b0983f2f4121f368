package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAuthor_FullName(t *testing.T) {
	a := Author{FirstName: "Ursula", FamilyName: "Le Guin"}
	assert.Equal(t, "Le Guin, Ursula", a.FullName())

	assert.Empty(t, Author{FirstName: "Ursula"}.FullName())
	assert.Empty(t, Author{FamilyName: "Le Guin"}.FullName())
}

func TestAuthor_URL(t *testing.T) {
	id := uuid.New()
	a := Author{ID: id}
	assert.Equal(t, "/catalog/author/"+id.String(), a.URL())
}

func TestAuthor_Lifespan(t *testing.T) {
	born := time.Date(1929, time.October, 21, 0, 0, 0, 0, time.UTC)
	died := time.Date(2018, time.January, 22, 0, 0, 0, 0, time.UTC)

	a := Author{DateOfBirth: &born, DateOfDeath: &died}
	assert.Equal(t, "Oct 21, 1929", a.DateOfBirthFormatted())
	assert.Equal(t, "Jan 22, 2018", a.DateOfDeathFormatted())
	assert.Equal(t, "Oct 21, 1929 - Jan 22, 2018", a.Lifespan())

	alive := Author{DateOfBirth: &born}
	assert.Equal(t, "Oct 21, 1929 - ", alive.Lifespan())
	assert.Empty(t, alive.DateOfDeathFormatted())
}

func TestBook_URL(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, "/catalog/book/"+id.String(), Book{ID: id}.URL())
}
