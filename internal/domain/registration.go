package domain

import (
	"time"

	"gorm.io/gorm"
)

// CollegeRegistration is an application to onboard a college. Its email is
// unique on its own, independent of the users table.
type CollegeRegistration struct {
	ID                 RegistrationID     `gorm:"type:uuid;primaryKey" json:"id"`
	CollegeName        string             `gorm:"type:text;not null" json:"collegeName"`
	CollegeType        CollegeType        `gorm:"type:text;not null" json:"collegeType"`
	CollegeDomain      string             `gorm:"type:citext;not null" json:"collegeDomain"`
	ApplicantName      string             `gorm:"type:text;not null" json:"applicantName"`
	Designation        string             `gorm:"type:text;not null" json:"designation"`
	Email              string             `gorm:"type:citext;not null;uniqueIndex:ux_college_registrations_email" json:"email"`
	Password           string             `gorm:"type:text;not null" json:"-"`
	ContactPhone       string             `gorm:"type:text" json:"contactPhone,omitempty"`
	Website            string             `gorm:"type:text" json:"website,omitempty"`
	VerifiedDocument   Document           `gorm:"embedded;embeddedPrefix:verified_doc_" json:"-"`
	ProofOfDesignation Document           `gorm:"embedded;embeddedPrefix:proof_doc_" json:"-"`
	Status             RegistrationStatus `gorm:"type:text;not null;index" json:"status"`
	RejectionReason    string             `gorm:"type:text" json:"rejectionReason,omitempty"`
	ReviewedAt         *time.Time         `json:"reviewedAt,omitempty"`
	CreatedAt          time.Time          `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time          `gorm:"not null" json:"updatedAt"`
}

func (CollegeRegistration) TableName() string { return "college_registrations" }

func (r *CollegeRegistration) BeforeSave(tx *gorm.DB) error {
	return encodePassword(&r.Password)
}
