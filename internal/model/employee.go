package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee seniority classes.
const (
	ClassSenior   = "Senior"
	ClassMidLevel = "Mid-level"
	ClassJunior   = "Junior"
	ClassIntern   = "Intern"
)

// Employee is a managed personnel record. An employee need not have a login;
// the record is independent of User. Email is unique across employees.
type Employee struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null;index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string    `json:"phone" gorm:"size:50"`
	Age          *int      `json:"age"`
	Class        string    `json:"class" gorm:"size:50;index"`
	Attendance   int       `json:"attendance" gorm:"default:100"`
	Subjects     []string  `json:"subjects" gorm:"serializer:json"`
	Department   string    `json:"department" gorm:"size:255;index"`
	Position     string    `json:"position" gorm:"size:255"`
	JoinDate     time.Time `json:"joinDate"`
	Address      string    `json:"address" gorm:"size:500"`
	Bio          string    `json:"bio" gorm:"type:text"`
	Education    []string  `json:"education" gorm:"serializer:json"`
	Skills       []string  `json:"skills" gorm:"serializer:json"`
	Performance  int       `json:"performance" gorm:"default:7"`
	Notes        string    `json:"notes" gorm:"type:text"`
	ProfileImage string    `json:"profileImage" gorm:"size:1024"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
