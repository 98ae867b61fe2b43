package domain

import "github.com/google/uuid"

type UserID = uuid.UUID
type SessionID = uuid.UUID
type CollegeID = uuid.UUID
type RegistrationID = uuid.UUID
type StudentID = uuid.UUID
type CounselorID = uuid.UUID
type PeerID = uuid.UUID
type CollegeAdminID = uuid.UUID
type AppointmentID = uuid.UUID
