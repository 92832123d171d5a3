package reports_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cardmia/ecgportal/svc/reports"
)

var fixedNow = time.Date(2025, 1, 2, 3, 4, 5, 678_000_000, time.UTC)

func TestAssignedKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{"plain", "report.pdf", "doctor-assigned-reports/DR-1/2025/01/02/report.pdf"},
		{"spaces and unicode", "Ana María ECG.pdf", "doctor-assigned-reports/DR-1/2025/01/02/Ana_Mar__a_ECG.pdf"},
		{"path separators", "../../etc/passwd", "doctor-assigned-reports/DR-1/2025/01/02/.._.._etc_passwd"},
		{"empty", "", "doctor-assigned-reports/DR-1/2025/01/02/uploaded-report.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, reports.AssignedKey("DR-1", tt.filename, fixedNow))
		})
	}
}

func TestAssignedKey_UsesUTCDate(t *testing.T) {
	t.Parallel()

	local := time.Date(2025, 1, 1, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "doctor-assigned-reports/DR-1/2025/01/02/a.pdf", reports.AssignedKey("DR-1", "a.pdf", local))
}

func TestUploadKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"doctor-assigned-reports/DR-1/ECG_Report_Jane_Doe_2025-01-02T03-04-05.pdf",
		reports.UploadKey("DR-1", "Jane Doe", fixedNow))
	assert.Equal(t,
		"doctor-assigned-reports/DR-1/ECG_Report_2025-01-02T03-04-05.pdf",
		reports.UploadKey("DR-1", "  ", fixedNow))
	assert.Equal(t,
		"doctor-assigned-reports/DR-1/ECG_Report_O_Brien__Jr__2025-01-02T03-04-05.pdf",
		reports.UploadKey("DR-1", "O'Brien, Jr.", fixedNow))
}

func TestReviewedKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "doctor-reviewed-reports/DR-1/2025/01/02/ecg_1.pdf", reports.ReviewedKey("DR-1", "ecg 1.pdf", fixedNow))
	assert.Equal(t, "doctor-reviewed-reports/DR-1/2025/01/02/reviewed-report.pdf", reports.ReviewedKey("DR-1", "", fixedNow))
}

func TestReportsPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "doctor-assigned-reports/DR-1/", reports.ReportsPrefix("DR-1", reports.StatusPending))
	assert.Equal(t, "doctor-reviewed-reports/DR-1/", reports.ReportsPrefix("DR-1", reports.StatusReviewed))
	assert.Equal(t, "doctors/DR-1.json", reports.DoctorKey("DR-1"))
}

func TestNewDoctorID(t *testing.T) {
	t.Parallel()

	id := reports.NewDoctorID()
	assert.Regexp(t, `^DR-[0-9A-F]{8}$`, id)
	assert.NotEqual(t, id, reports.NewDoctorID())
}

func TestSanitizeDoctorID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{"DR-ABC123", "DR-ABC123"},
		{"  DR-ABC123\n", "DR-ABC123"},
		{"DR-ABC123:", "DR-ABC123"},
		{"DR_1/../x", "DR_1x"},
		{"<script>", "script"},
		{":::", ""},
		{"", ""},
		{strings.Repeat("a", 80), strings.Repeat("a", 50)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, reports.SanitizeDoctorID(tt.raw), "raw %q", tt.raw)
	}
}
