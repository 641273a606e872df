package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// VerificationState is the review outcome of a worker credential
type VerificationState string

const (
	VerificationPending  VerificationState = "pending"
	VerificationVerified VerificationState = "verified"
	VerificationRejected VerificationState = "rejected"
)

// VerificationKind tags which constructor built a Verification
type VerificationKind string

const (
	VerificationKindSimple      VerificationKind = "simple"
	VerificationKindPerDocument VerificationKind = "per_document"
)

// DocumentVerification holds per-document review outcomes for one category
type DocumentVerification struct {
	ProfilePhoto VerificationState `json:"profilePhoto,omitempty"`
	Certificate  VerificationState `json:"certificate,omitempty"`
	Citizenship  VerificationState `json:"citizenship,omitempty"`
	License      VerificationState `json:"license,omitempty"`
	Overall      VerificationState `json:"overall,omitempty"`
}

// Verification is either a single status or a per-document breakdown.
// Build it with SimpleVerification or PerDocumentVerification.
type Verification struct {
	kind      VerificationKind
	simple    VerificationState
	documents DocumentVerification
}

// SimpleVerification builds a Verification from one status
func SimpleVerification(state VerificationState) Verification {
	return Verification{kind: VerificationKindSimple, simple: normalizeState(state)}
}

// PerDocumentVerification builds a Verification from per-document statuses
func PerDocumentVerification(docs DocumentVerification) Verification {
	docs.ProfilePhoto = normalizeState(docs.ProfilePhoto)
	docs.Certificate = normalizeState(docs.Certificate)
	docs.Citizenship = normalizeState(docs.Citizenship)
	docs.License = normalizeState(docs.License)
	docs.Overall = normalizeState(docs.Overall)
	return Verification{kind: VerificationKindPerDocument, documents: docs}
}

// Kind returns the constructor tag
func (v Verification) Kind() VerificationKind {
	if v.kind == "" {
		return VerificationKindSimple
	}
	return v.kind
}

// Documents returns the per-document breakdown and whether one exists
func (v Verification) Documents() (DocumentVerification, bool) {
	return v.documents, v.kind == VerificationKindPerDocument
}

// Status collapses the variant to one state. A per-document record is verified
// only through its overall field.
func (v Verification) Status() VerificationState {
	switch v.Kind() {
	case VerificationKindPerDocument:
		if v.documents.Overall == "" {
			return VerificationPending
		}
		return v.documents.Overall
	default:
		if v.simple == "" {
			return VerificationPending
		}
		return v.simple
	}
}

// IsVerified is shorthand for Status() == verified
func (v Verification) IsVerified() bool {
	return v.Status() == VerificationVerified
}

type verificationWire struct {
	Kind      VerificationKind      `json:"kind"`
	Status    VerificationState     `json:"status,omitempty"`
	Documents *DocumentVerification `json:"documents,omitempty"`
}

// MarshalJSON always writes the structured form
func (v Verification) MarshalJSON() ([]byte, error) {
	w := verificationWire{Kind: v.Kind(), Status: v.Status()}
	if docs, ok := v.Documents(); ok {
		w.Documents = &docs
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts a bare status string, the structured form, or a raw
// per-document object as found in legacy rows.
func (v *Verification) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = SimpleVerification(VerificationPending)
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid verification status: %w", err)
		}
		*v = SimpleVerification(VerificationState(s))
		return nil
	}

	var w verificationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("invalid verification object: %w", err)
	}
	switch {
	case w.Kind == VerificationKindPerDocument && w.Documents != nil:
		*v = PerDocumentVerification(*w.Documents)
		return nil
	case w.Kind == VerificationKindSimple:
		*v = SimpleVerification(w.Status)
		return nil
	}

	var docs DocumentVerification
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("invalid verification documents: %w", err)
	}
	*v = PerDocumentVerification(docs)
	return nil
}

func normalizeState(s VerificationState) VerificationState {
	switch VerificationState(strings.ToLower(strings.TrimSpace(string(s)))) {
	case VerificationVerified, "approved":
		return VerificationVerified
	case VerificationRejected, "declined":
		return VerificationRejected
	case "":
		return ""
	default:
		return VerificationPending
	}
}
