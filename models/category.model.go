package models

// Category is the seeded lookup table behind the craft category enum on
// Product. Seeded once from Categories; read-only at runtime.
type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null;unique" json:"name"`
	Slug string `gorm:"size:100;not null;unique" json:"slug"`
}
