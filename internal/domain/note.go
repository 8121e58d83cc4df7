package domain

import "time"

type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id"`
	PersonID  uint      `gorm:"not null;index;column:person_id"`
	Content   string    `gorm:"not null;column:content"`
	Timestamp time.Time `gorm:"not null;index;column:timestamp"`

	// Person is only declared so migration emits the foreign key. Never preloaded.
	Person *Person `gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
}

func (Note) TableName() string { return "note" }
