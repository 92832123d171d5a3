package reports

import (
	"cmp"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/cardmia/ecgportal/handler"
	"github.com/cardmia/ecgportal/pkg/logger"
	"github.com/cardmia/ecgportal/pkg/sanitizer"
	"github.com/cardmia/ecgportal/pkg/storage"
	"github.com/cardmia/ecgportal/pkg/validator"
)

const (
	StatusPending  = "pending"
	StatusReviewed = "reviewed"
)

type ReportsQuery struct {
	DoctorID string `query:"doctorId"`
	Status   string `query:"status"`
}

// ReportSummary is one PDF in a doctor's report list.
// UploadedAt and LastModified carry the same value; older clients read LastModified.
type ReportSummary struct {
	Key          string `json:"key"`
	FileName     string `json:"fileName"`
	URL          string `json:"url"`
	UploadedAt   string `json:"uploadedAt,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

type ReportsResponse struct {
	DoctorID string          `json:"doctorId"`
	Status   string          `json:"status"`
	Reports  []ReportSummary `json:"reports"`
}

func (s *Service) listReports(ctx handler.Context, q ReportsQuery) handler.Response {
	doctorID := SanitizeDoctorID(q.DoctorID)
	status := cmp.Or(strings.ToLower(sanitizer.Trim(q.Status)), StatusPending)

	if err := validator.Apply(
		validator.Required("doctorId", doctorID != "", "doctorId query parameter is required and must be valid"),
		validator.OneOf("status", status, StatusPending, StatusReviewed),
	); err != nil {
		return s.fail(ctx, err)
	}

	prefix := ReportsPrefix(doctorID, status)
	objects, err := s.store.List(ctx, prefix)
	if err != nil {
		return s.fail(ctx, errors.Join(ErrListFailed, err), logger.DoctorID(doctorID))
	}

	reports := make([]ReportSummary, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".pdf") {
			continue
		}
		// Listings can be stale; a key removed since the list call is skipped.
		if !s.store.Exists(ctx, obj.Key) {
			s.log.WarnContext(ctx, "skipping missing report", logger.ObjectKey(obj.Key))
			continue
		}
		url, err := s.store.URL(ctx, obj.Key)
		if err != nil {
			s.log.ErrorContext(ctx, "failed to presign report url",
				logger.ObjectKey(obj.Key),
				logger.Error(err),
			)
			continue
		}

		var modified string
		if !obj.LastModified.IsZero() {
			modified = isoTime(obj.LastModified)
		}
		reports = append(reports, ReportSummary{
			Key:          obj.Key,
			FileName:     FileName(obj.Key),
			URL:          url,
			UploadedAt:   modified,
			LastModified: modified,
		})
	}

	// ISO timestamps in UTC sort lexically; empty ones end up last.
	slices.SortStableFunc(reports, func(a, b ReportSummary) int {
		return strings.Compare(b.UploadedAt, a.UploadedAt)
	})

	s.log.DebugContext(ctx, "listed reports",
		logger.DoctorID(doctorID),
		slog.String("status", status),
		logger.Count(len(reports)),
	)

	return handler.JSON(ReportsResponse{DoctorID: doctorID, Status: status, Reports: reports})
}

type FileContentQuery struct {
	Key string `query:"key"`
}

type FileContentResponse struct {
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	// Content is the parsed document for .json keys and the raw text otherwise.
	Content      any    `json:"content"`
	LastModified string `json:"lastModified,omitempty"`
}

func (s *Service) fileContent(ctx handler.Context, q FileContentQuery) handler.Response {
	if q.Key == "" {
		return s.fail(ctx, ErrMissingKey)
	}

	body, obj, err := s.store.Get(ctx, q.Key)
	if err != nil {
		return s.fail(ctx, err, logger.ObjectKey(q.Key))
	}
	if len(body) == 0 {
		return s.fail(ctx, storage.ErrEmptyObject, logger.ObjectKey(q.Key))
	}

	resp := FileContentResponse{Key: obj.Key, ContentType: obj.ContentType}
	if !obj.LastModified.IsZero() {
		resp.LastModified = isoTime(obj.LastModified)
	}

	if strings.HasSuffix(strings.ToLower(q.Key), ".json") {
		if !json.Valid(body) {
			return s.fail(ctx, ErrInvalidJSONContent, logger.ObjectKey(q.Key))
		}
		resp.Content = json.RawMessage(body)
	} else {
		resp.Content = string(body)
	}

	return handler.JSON(resp)
}
