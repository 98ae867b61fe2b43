package validation

import (
	"errors"
	"strings"
	"testing"

	"collegeconnect/internal/domain"
	"collegeconnect/internal/dto"

	"github.com/google/uuid"
)

func TestStructReportsMissingFields(t *testing.T) {
	err := Struct(dto.StudentPayload{Name: "Ada"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "studentId is required") {
		t.Fatalf("expected field name in message, got %q", err.Error())
	}
}

func TestStructDocuments(t *testing.T) {
	p := dto.CollegeAdminPayload{Name: "Ada", Designation: "Registrar"}
	err := Struct(p)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !strings.Contains(err.Error(), "verifiedCollegeDocument document is required") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	doc := domain.Document{Filename: "a.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}
	p.VerifiedCollegeDocument = doc
	p.ProofOfDesignation = doc
	if err := Struct(p); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}

func TestStructUUIDRequired(t *testing.T) {
	if err := Struct(dto.CounselorPayload{Name: "C"}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected missing college to fail, got %v", err)
	}
	if err := Struct(dto.CounselorPayload{Name: "C", CollegeID: uuid.New()}); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}
}
