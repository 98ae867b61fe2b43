package events

import "time"

type RegistrationSubmitted struct {
	RegistrationID string    `json:"registrationId"`
	CollegeDomain  string    `json:"collegeDomain"`
	At             time.Time `json:"at"`
}

func (RegistrationSubmitted) Name() string { return "registration.submitted" }

// RegistrationDecided is raised when a reviewer moves a registration to
// Approved, Rejected or back to Pending.
type RegistrationDecided struct {
	RegistrationID string    `json:"registrationId"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason,omitempty"`
	CollegeID      string    `json:"collegeId,omitempty"`
	At             time.Time `json:"at"`
}

func (RegistrationDecided) Name() string { return "registration.decided" }

type PeerRosterReplaced struct {
	PeerID   string    `json:"peerId"`
	Students int       `json:"students"`
	At       time.Time `json:"at"`
}

func (PeerRosterReplaced) Name() string { return "peer.roster_replaced" }
