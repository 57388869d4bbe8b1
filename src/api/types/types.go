package types

import "time"

// User roles
const (
	RoleGeneral  = "general"
	RoleVerifier = "verifier"
)

// Rumour status values
const (
	StatusNormal = "normal"
	StatusPanic  = "panic"
)

// Report classifications. The same labels serve as verification verdicts
// when a verifier closes a rumour out.
const (
	ReportDistortion = "distortion"
	ReportIncitement = "incitement"
	ReportFalsehood  = "falsehood"
	ReportCredible   = "credible"
)

// Registered users
type User struct {
	UserID       uint64 `gorm:"primaryKey" json:"userId"`
	Username     string `gorm:"size:64;not null" json:"username"`
	Name         string `gorm:"size:128;not null" json:"name"`
	Role         string `gorm:"size:16;not null;default:general" json:"role"`
	VerifierCode string `gorm:"size:16" json:"verifierCode,omitempty"`
}

// Tracked rumours. RumourID is caller-supplied and 8 digits; credibility
// score is derived from the report mix and overwritten on every submission.
type Rumour struct {
	RumourID           uint64    `gorm:"primaryKey" json:"rumourId"`
	Title              string    `gorm:"size:255;not null" json:"title"`
	Content            string    `gorm:"type:text" json:"content"`
	Source             string    `gorm:"size:64;not null" json:"source"`
	CreatedDate        time.Time `gorm:"not null" json:"createdDate"`
	CredibilityScore   float64   `gorm:"default:0" json:"credibilityScore"`
	Status             string    `gorm:"size:16;not null;default:normal" json:"status"`
	IsVerified         bool      `gorm:"default:false" json:"isVerified"`
	VerificationResult string    `gorm:"size:32" json:"verificationResult,omitempty"`
	VerifiedBy         *uint64   `gorm:"index" json:"verifiedBy,omitempty"`
}

// User classifications filed against rumours. One report per user per
// rumour, enforced by the composite unique index.
type Report struct {
	ReportID   uint64    `gorm:"primaryKey" json:"reportId"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_report_user_rumour" json:"userId"`
	RumourID   uint64    `gorm:"not null;uniqueIndex:idx_report_user_rumour" json:"rumourId"`
	ReportDate time.Time `gorm:"not null" json:"reportDate"`
	ReportType string    `gorm:"size:16;not null" json:"reportType"`
}

// Settings
type Setting struct {
	ID    uint8  `gorm:"primaryKey" json:"-"`
	Name  string `gorm:"size:32;not null" json:"name"`
	Value string `gorm:"size:256;not null" json:"value"`
}

// RumourWithCount is the list-view projection: a rumour annotated with its
// live report count. The count is a join-time aggregate, never persisted.
type RumourWithCount struct {
	RumourID           uint64    `json:"rumourId"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	Source             string    `json:"source"`
	CreatedDate        time.Time `json:"createdDate"`
	CredibilityScore   float64   `json:"credibilityScore"`
	Status             string    `json:"status"`
	IsVerified         bool      `json:"isVerified"`
	VerificationResult string    `json:"verificationResult,omitempty"`
	ReportCount        int64     `json:"reportCount"`
}

// RumourDetail is the detail-view projection: the full rumour row plus the
// attached verifier's name and code when one is set.
type RumourDetail struct {
	RumourID           uint64    `json:"rumourId"`
	Title              string    `json:"title"`
	Content            string    `json:"content"`
	Source             string    `json:"source"`
	CreatedDate        time.Time `json:"createdDate"`
	CredibilityScore   float64   `json:"credibilityScore"`
	Status             string    `json:"status"`
	IsVerified         bool      `json:"isVerified"`
	VerificationResult string    `json:"verificationResult,omitempty"`
	VerifiedBy         *uint64   `json:"verifiedBy,omitempty"`
	VerifierName       string    `json:"verifierName,omitempty"`
	VerifierCode       string    `json:"verifierCode,omitempty"`
}

// ReportEntry is a report annotated with the filing user's handle and name.
type ReportEntry struct {
	ReportID   uint64    `json:"reportId"`
	UserID     uint64    `json:"userId"`
	RumourID   uint64    `json:"rumourId"`
	ReportDate time.Time `json:"reportDate"`
	ReportType string    `json:"reportType"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
}
