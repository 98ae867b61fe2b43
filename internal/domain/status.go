package domain

import (
	"fmt"
	"strings"
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "Pending"
	RegistrationApproved RegistrationStatus = "Approved"
	RegistrationRejected RegistrationStatus = "Rejected"
)

func ParseRegistrationStatus(raw string) (RegistrationStatus, error) {
	for _, s := range []RegistrationStatus{RegistrationPending, RegistrationApproved, RegistrationRejected} {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: unknown registration status %q", ErrInvalidInput, raw)
}

// ProfileStatus is shared by colleges, college admins and counselors.
type ProfileStatus string

const (
	StatusActive   ProfileStatus = "Active"
	StatusInactive ProfileStatus = "Inactive"
)

func ParseProfileStatus(raw string) (ProfileStatus, error) {
	for _, s := range []ProfileStatus{StatusActive, StatusInactive} {
		if strings.EqualFold(string(s), strings.TrimSpace(raw)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: status must be Active or Inactive", ErrInvalidInput)
}

type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "Pending"
	AppointmentApproved  AppointmentStatus = "Approved"
	AppointmentCancelled AppointmentStatus = "Cancelled"
	AppointmentCompleted AppointmentStatus = "Completed"
)

var appointmentStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentApproved,
	AppointmentCancelled,
	AppointmentCompleted,
}

// ParseAppointmentStatus accepts only the exact enum spelling.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	for _, s := range appointmentStatuses {
		if string(s) == raw {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: invalid appointment status %q", ErrInvalidInput, raw)
}

type CollegeType string

const (
	CollegePrivate    CollegeType = "Private"
	CollegeGovernment CollegeType = "Government"
	CollegeAutonomous CollegeType = "Autonomous"
	CollegeOther      CollegeType = "Other"
)

func ParseCollegeType(raw string) (CollegeType, error) {
	for _, t := range []CollegeType{CollegePrivate, CollegeGovernment, CollegeAutonomous, CollegeOther} {
		if strings.EqualFold(string(t), strings.TrimSpace(raw)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: unknown college type %q", ErrInvalidInput, raw)
}
