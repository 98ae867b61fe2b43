package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Address struct {
	Street     string `gorm:"type:text" json:"street,omitempty"`
	City       string `gorm:"type:text" json:"city,omitempty"`
	State      string `gorm:"type:text" json:"state,omitempty"`
	Country    string `gorm:"type:text" json:"country,omitempty"`
	PostalCode string `gorm:"type:text" json:"postalCode,omitempty"`
}

// College is owned by exactly one college_admin user.
type College struct {
	ID              CollegeID                     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          UserID                        `gorm:"type:uuid;not null;uniqueIndex:ux_colleges_user" json:"userId"`
	Name            string                        `gorm:"type:text;not null" json:"name"`
	Type            CollegeType                   `gorm:"type:text;not null" json:"type"`
	Domain          string                        `gorm:"type:citext;not null;uniqueIndex:ux_colleges_domain" json:"domain"`
	Code            *string                       `gorm:"type:text;uniqueIndex:ux_colleges_code" json:"code,omitempty"`
	Address         Address                       `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	ContactEmail    string                        `gorm:"type:citext" json:"contactEmail,omitempty"`
	ContactPhone    string                        `gorm:"type:text" json:"contactPhone,omitempty"`
	Website         string                        `gorm:"type:text" json:"website,omitempty"`
	EstablishedYear *int                          `json:"establishedYear,omitempty"`
	Logo            Document                      `gorm:"embedded;embeddedPrefix:logo_" json:"-"`
	Documents       datatypes.JSONSlice[Document] `json:"-"`
	Status          ProfileStatus                 `gorm:"type:text;not null" json:"status"`
	CreatedAt       time.Time                     `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time                     `gorm:"not null" json:"updatedAt"`
}

func (College) TableName() string { return "colleges" }
