package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const displayDateLayout = "Jan 2, 2006"

type Author struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	FirstName   string    `gorm:"size:100;not null"`
	FamilyName  string    `gorm:"size:100;not null;index"`
	DateOfBirth *time.Time
	DateOfDeath *time.Time
	Books       []Book `json:"books,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (a *Author) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}

// FullName is "family, first", or empty when either name is missing.
func (a Author) FullName() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

func (a Author) URL() string {
	return "/catalog/author/" + a.ID.String()
}

func (a Author) DateOfBirthFormatted() string {
	return formatDate(a.DateOfBirth)
}

func (a Author) DateOfDeathFormatted() string {
	return formatDate(a.DateOfDeath)
}

func (a Author) Lifespan() string {
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(displayDateLayout)
}
