package domain

import "time"

const (
	MaxLastNameLen  = 32
	MaxFirstNameLen = 32
)

// Person is keyed by a surrogate id but looked up by last name, which is unique.
type Person struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	LName     string    `gorm:"size:32;uniqueIndex;not null;column:lname"`
	FName     string    `gorm:"size:32;column:fname"`
	Timestamp time.Time `gorm:"not null;column:timestamp"`
}

func (Person) TableName() string { return "person" }
