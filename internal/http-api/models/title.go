package models

// Title is a creative work under review (book, film, ...).
type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:256;not null"`
	Year        int     `json:"year" gorm:"not null"`
	Description *string `json:"description,omitempty" gorm:"type:text"`
	CategoryID  *int64  `json:"-" gorm:"index"`

	// Rating is the arithmetic mean of review scores, computed by the
	// repository at read time. Never stored; nil when no reviews exist.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// Associations
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
