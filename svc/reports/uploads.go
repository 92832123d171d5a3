package reports

import (
	"errors"

	"github.com/cardmia/ecgportal/handler"
	"github.com/cardmia/ecgportal/pkg/formdata"
	"github.com/cardmia/ecgportal/pkg/logger"
	"github.com/cardmia/ecgportal/pkg/sanitizer"
	"github.com/cardmia/ecgportal/pkg/storage"
	"github.com/cardmia/ecgportal/pkg/validator"
)

const (
	pdfContentType = "application/pdf"
	uploadedBy     = "teammate-app"
)

// UploadRequest is the form the teammate app posts to hand a report to a doctor.
type UploadRequest struct {
	DoctorID    string          `form:"doctorId"`
	PatientName string          `form:"patientName"`
	PDF         *formdata.Field `file:"pdfFile"`
}

type UploadResponse struct {
	Message    string `json:"message"`
	FileName   string `json:"fileName"`
	Key        string `json:"key"`
	UploadedAt string `json:"uploadedAt"`
}

func (s *Service) upload(ctx handler.Context, req UploadRequest) handler.Response {
	doctorID := sanitizer.Trim(req.DoctorID)
	patient := sanitizer.Trim(req.PatientName)
	if err := validator.Apply(
		validator.RequiredString("doctorId", doctorID),
		validator.Required("pdfFile", req.PDF != nil, "PDF file is required"),
	); err != nil {
		return s.fail(ctx, err)
	}

	now := s.now()
	key := UploadKey(doctorID, patient, now)
	uploadedAt := isoTime(now)

	_, err := s.store.Put(ctx, key, req.PDF.Content,
		storage.WithContentType(pdfContentType),
		storage.WithMetadata(map[string]string{
			"doctorId":    doctorID,
			"patientName": patient,
			"uploadedBy":  uploadedBy,
			"uploadedAt":  uploadedAt,
		}),
	)
	if err != nil {
		return s.fail(ctx, uploadError(err), logger.DoctorID(doctorID), logger.ObjectKey(key))
	}

	s.log.InfoContext(ctx, "report uploaded",
		logger.DoctorID(doctorID),
		logger.ObjectKey(key),
		logger.Size(req.PDF.Size()),
	)

	return handler.JSON(UploadResponse{
		Message:    "Report uploaded successfully",
		FileName:   FileName(key),
		Key:        key,
		UploadedAt: uploadedAt,
	})
}

// AssignedUploadRequest is the form posted when an assigned report is filed under
// the upload date.
type AssignedUploadRequest struct {
	DoctorID string          `form:"doctorId"`
	File     *formdata.Field `file:"file"`
}

// AssignedUploadResponse is returned with 201 Created.
type AssignedUploadResponse struct {
	Message  string `json:"message"`
	Key      string `json:"key"`
	Location string `json:"location"`
}

func (s *Service) uploadAssigned(ctx handler.Context, req AssignedUploadRequest) handler.Response {
	doctorID := sanitizer.Trim(req.DoctorID)
	if err := validator.Apply(
		validator.Required("file", req.File != nil, "Missing file"),
		validator.Required("doctorId", doctorID != "", "Missing doctorId"),
	); err != nil {
		return s.fail(ctx, err)
	}

	now := s.now()
	key := AssignedKey(doctorID, req.File.Filename, now)

	_, err := s.store.Put(ctx, key, req.File.Content,
		storage.WithContentType(pdfContentType),
		storage.WithMetadata(map[string]string{
			"doctorId":     doctorID,
			"uploadedAt":   isoTime(now),
			"originalName": req.File.Filename,
		}),
	)
	if err != nil {
		return s.fail(ctx, uploadError(err), logger.DoctorID(doctorID), logger.ObjectKey(key))
	}

	s.log.InfoContext(ctx, "assigned report uploaded",
		logger.DoctorID(doctorID),
		logger.ObjectKey(key),
		logger.Size(req.File.Size()),
	)

	return handler.Created(AssignedUploadResponse{
		Message:  "File uploaded successfully",
		Key:      key,
		Location: s.store.Location(key),
	})
}

// ReviewedUploadRequest is the form posted when a doctor returns a reviewed report.
// OriginalFileName falls back to the uploaded part's filename.
type ReviewedUploadRequest struct {
	DoctorID         string          `form:"doctorId"`
	OriginalFileName string          `form:"originalFileName"`
	PDF              *formdata.Field `file:"reviewedPdf"`
}

type ReviewedUploadResponse struct {
	Key  string `json:"key"`
	ETag string `json:"etag"`
}

func (s *Service) uploadReviewed(ctx handler.Context, req ReviewedUploadRequest) handler.Response {
	doctorID := sanitizer.Trim(req.DoctorID)
	name := sanitizer.Trim(req.OriginalFileName)
	if name == "" && req.PDF != nil {
		name = req.PDF.Filename
	}

	if err := validator.Apply(
		validator.Required("reviewedPdf", req.PDF != nil, "No reviewedPdf file uploaded"),
		validator.RequiredString("originalFileName", name),
		validator.RequiredString("doctorId", doctorID),
	); err != nil {
		return s.fail(ctx, err)
	}

	now := s.now()
	key := ReviewedKey(doctorID, name, now)

	obj, err := s.store.Put(ctx, key, req.PDF.Content,
		storage.WithContentType(pdfContentType),
		storage.WithMetadata(map[string]string{
			"doctorId":         doctorID,
			"originalFileName": name,
			"reviewedAt":       isoTime(now),
		}),
	)
	if err != nil {
		return s.fail(ctx, uploadError(err), logger.DoctorID(doctorID), logger.ObjectKey(key))
	}

	s.log.InfoContext(ctx, "reviewed report uploaded",
		logger.DoctorID(doctorID),
		logger.ObjectKey(key),
		logger.Size(req.PDF.Size()),
	)

	return handler.JSON(ReviewedUploadResponse{Key: obj.Key, ETag: obj.ETag})
}

// uploadError keeps key rejections as client errors and turns every other
// storage failure into ErrUploadFailed.
func uploadError(err error) error {
	if errors.Is(err, storage.ErrInvalidKey) {
		return err
	}
	return errors.Join(ErrUploadFailed, err)
}
