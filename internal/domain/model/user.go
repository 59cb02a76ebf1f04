package model

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	Role         Role      `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}

func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
