package domain

// Models lists every persisted type in dependency order for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&Session{},
		&CollegeRegistration{},
		&College{},
		&CollegeAdmin{},
		&Counselor{},
		&Peer{},
		&Student{},
		&Appointment{},
	}
}
