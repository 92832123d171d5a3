package reports

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cardmia/ecgportal/pkg/sanitizer"
)

const (
	assignedPrefix = "doctor-assigned-reports/"
	reviewedPrefix = "doctor-reviewed-reports/"
	doctorsPrefix  = "doctors/"

	assignedFallbackName   = "uploaded-report.pdf"
	reviewedFallbackName = "reviewed-report.pdf"

	maxDoctorIDLength = 50
)

var (
	doctorIDChars = sanitizer.AlnumOr("-_")
	patientChars  = sanitizer.AlnumOr("")

	cleanDoctorID = sanitizer.Compose(
		sanitizer.Trim,
		func(s string) string { return sanitizer.KeepChars(s, doctorIDChars) },
		func(s string) string { return sanitizer.MaxLength(s, maxDoctorIDLength) },
	)
)

// UploadKey is the key of a report the teammate app posts to /api/doctor/upload.
// The file name is ECG_Report_ followed by the sanitized patient name, if any, and the
// upload time, e.g. ECG_Report_Jane_Doe_2025-01-02T03-04-05.pdf.
func UploadKey(doctorID, patientName string, now time.Time) string {
	var b strings.Builder
	b.WriteString(assignedPrefix)
	b.WriteString(doctorID)
	b.WriteString("/ECG_Report_")
	if p := patientSegment(patientName); p != "" {
		b.WriteString(p)
		b.WriteByte('_')
	}
	b.WriteString(keyTimestamp(now))
	b.WriteString(".pdf")
	return b.String()
}

// AssignedKey is the key of a report posted to /api/doctor/upload-assigned. It is filed
// under the UTC upload date with the sanitized original filename.
func AssignedKey(doctorID, filename string, now time.Time) string {
	return assignedPrefix + doctorID + "/" + datePath(now) + "/" +
		sanitizer.SecureFilename(filename, assignedFallbackName)
}

// ReviewedKey is the key of a report a doctor has reviewed and sent back.
func ReviewedKey(doctorID, filename string, now time.Time) string {
	return reviewedPrefix + doctorID + "/" + datePath(now) + "/" +
		sanitizer.SecureFilename(filename, reviewedFallbackName)
}

// DoctorKey is the key of a doctor's JSON record.
func DoctorKey(doctorID string) string {
	return doctorsPrefix + doctorID + ".json"
}

// ReportsPrefix returns the listing prefix for a doctor's pending or reviewed reports.
func ReportsPrefix(doctorID, status string) string {
	if status == StatusReviewed {
		return reviewedPrefix + doctorID + "/"
	}
	return assignedPrefix + doctorID + "/"
}

// NewDoctorID returns "DR-" followed by the first group of a random UUID, upper-cased.
func NewDoctorID() string {
	first, _, _ := strings.Cut(uuid.NewString(), "-")
	return "DR-" + strings.ToUpper(first)
}

// SanitizeDoctorID cleans a doctor ID taken from a query string: only [A-Za-z0-9_-] is
// kept and the result is capped at 50 bytes. The result may be empty.
func SanitizeDoctorID(raw string) string {
	return cleanDoctorID(raw)
}

// FileName is the last segment of a key.
func FileName(key string) string {
	return path.Base(key)
}

func patientSegment(name string) string {
	name = sanitizer.Trim(name)
	if name == "" {
		return ""
	}
	return sanitizer.ReplaceOutside(name, patientChars, '_')
}

func datePath(t time.Time) string {
	return t.UTC().Format("2006/01/02")
}

// keyTimestamp formats t as UTC ISO-8601 to the second with ':' replaced by '-'.
func keyTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15-04-05")
}
