package entities

import (
	"time"

	"gorm.io/gorm"
)

// CodeConsumed replaces a verification code once it has been used for a password reset.
const CodeConsumed = "used"

type User struct {
	gorm.Model
	Email        string     `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Password     string     `json:"-" gorm:"not null"`
	FirstName    string     `json:"firstName" gorm:"type:varchar(255)"`
	LastName     string     `json:"lastName" gorm:"type:varchar(255)"`
	Mobile       string     `json:"mobile" gorm:"type:varchar(20)"`
	Otp          string     `json:"-" gorm:"type:varchar(16);default:''"`
	OtpExpiresAt *time.Time `json:"-"`
}
