package domain

// Summaries resolved by the store's explicit reference loader.

type UserRef struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

type CollegeRef struct {
	ID     CollegeID `json:"id"`
	Name   string    `json:"name"`
	Domain string    `json:"domain"`
}

type StudentRef struct {
	ID        StudentID `json:"id"`
	Name      string    `json:"name"`
	StudentID string    `json:"studentId"`
}

type CounselorRef struct {
	ID        CounselorID `json:"id"`
	Name      string      `json:"name"`
	CollegeID CollegeID   `json:"college"`
}

type PeerRef struct {
	ID   PeerID `json:"id"`
	Name string `json:"name"`
}
