package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Student struct {
	ID        StudentID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    UserID    `gorm:"type:uuid;not null;uniqueIndex:ux_students_user" json:"userId"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	StudentID string    `gorm:"column:student_id;type:text;not null;uniqueIndex:ux_students_student_id" json:"studentId"`
	PeerID    *PeerID   `gorm:"type:uuid;index" json:"peer,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (Student) TableName() string { return "students" }

type Counselor struct {
	ID             CounselorID                 `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         UserID                      `gorm:"type:uuid;not null;uniqueIndex:ux_counselors_user" json:"userId"`
	Name           string                      `gorm:"type:text;not null" json:"name"`
	CollegeID      CollegeID                   `gorm:"type:uuid;not null;index" json:"college"`
	Qualification  string                      `gorm:"type:text" json:"qualification,omitempty"`
	Specialization datatypes.JSONSlice[string] `json:"specialization"`
	ContactEmail   string                      `gorm:"type:citext" json:"contactEmail,omitempty"`
	ContactPhone   string                      `gorm:"type:text" json:"contactPhone,omitempty"`
	Status         ProfileStatus               `gorm:"type:text;not null" json:"status"`
	CreatedAt      time.Time                   `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time                   `gorm:"not null" json:"updatedAt"`
}

func (Counselor) TableName() string { return "counselors" }

type CollegeAdmin struct {
	ID                 CollegeAdminID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             UserID         `gorm:"type:uuid;not null;uniqueIndex:ux_college_admins_user" json:"userId"`
	Name               string         `gorm:"type:text;not null" json:"name"`
	Designation        string         `gorm:"type:text;not null" json:"designation"`
	VerifiedDocument   Document       `gorm:"embedded;embeddedPrefix:verified_doc_" json:"-"`
	ProofOfDesignation Document       `gorm:"embedded;embeddedPrefix:proof_doc_" json:"-"`
	Status             ProfileStatus  `gorm:"type:text;not null" json:"status"`
	CreatedAt          time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time      `gorm:"not null" json:"updatedAt"`
}

func (CollegeAdmin) TableName() string { return "college_admins" }

// Peer owns the roster side of the peer/student relation. A student id is in
// Students exactly when that student's PeerID points back here.
type Peer struct {
	ID        PeerID                         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    UserID                         `gorm:"type:uuid;not null;uniqueIndex:ux_peers_user" json:"userId"`
	Name      string                         `gorm:"type:text;not null" json:"name"`
	Students  datatypes.JSONSlice[uuid.UUID] `gorm:"column:student_ids" json:"students"`
	CreatedAt time.Time                      `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time                      `gorm:"not null" json:"updatedAt"`
}

func (Peer) TableName() string { return "peers" }

func (p *Peer) HasStudent(id StudentID) bool {
	for _, s := range p.Students {
		if s == id {
			return true
		}
	}
	return false
}
