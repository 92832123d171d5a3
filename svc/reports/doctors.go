package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/cardmia/ecgportal/handler"
	"github.com/cardmia/ecgportal/pkg/email"
	"github.com/cardmia/ecgportal/pkg/logger"
	"github.com/cardmia/ecgportal/pkg/storage"
	"github.com/cardmia/ecgportal/pkg/validator"
)

const doctorStatusActive = "ACTIVE"

// Doctor is the record stored at doctors/{doctorId}.json.
type Doctor struct {
	DoctorID       string `json:"doctorId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Hospital       string `json:"hospital"`
	LicenseNumber  string `json:"licenseNumber"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

type CreateDoctorRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Hospital       string `json:"hospital"`
	LicenseNumber  string `json:"licenseNumber"`
}

func (r CreateDoctorRequest) Validate() error {
	return validator.Apply(
		validator.RequiredString("name", r.Name),
		validator.MaxLenString("name", r.Name, 200),
		validator.RequiredString("email", r.Email),
		validator.ValidEmail("email", r.Email),
		validator.RequiredString("specialization", r.Specialization),
		validator.MaxLenString("specialization", r.Specialization, 200),
		validator.MaxLenString("hospital", r.Hospital, 200),
		validator.MaxLenString("licenseNumber", r.LicenseNumber, 100),
	)
}

type CreateDoctorResponse struct {
	Message    string `json:"message"`
	DoctorID   string `json:"doctorId"`
	Doctor     Doctor `json:"doctor"`
	InviteSent bool   `json:"inviteSent"`
}

func (s *Service) createDoctor(ctx handler.Context, req CreateDoctorRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return s.fail(ctx, err)
	}

	now := isoTime(s.now())
	doc := Doctor{
		DoctorID:       s.newDoctorID(),
		Name:           req.Name,
		Email:          req.Email,
		Specialization: req.Specialization,
		Hospital:       req.Hospital,
		LicenseNumber:  req.LicenseNumber,
		Status:         doctorStatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return s.fail(ctx, err, logger.DoctorID(doc.DoctorID))
	}

	key := DoctorKey(doc.DoctorID)
	_, err = s.store.Put(ctx, key, body,
		storage.WithContentType("application/json"),
		storage.WithMetadata(map[string]string{
			"doctor-id": doc.DoctorID,
			"email":     doc.Email,
		}),
	)
	if err != nil {
		return s.fail(ctx, uploadError(err), logger.DoctorID(doc.DoctorID), logger.ObjectKey(key))
	}

	// Invitation failures do not undo the stored record.
	sent := true
	if err := s.sendInvitation(ctx, doc); err != nil {
		sent = false
		s.log.ErrorContext(ctx, "failed to send doctor invitation",
			logger.DoctorID(doc.DoctorID),
			logger.Error(err),
		)
	}

	s.log.InfoContext(ctx, "doctor created", logger.DoctorID(doc.DoctorID), logger.ObjectKey(key))

	return handler.Created(CreateDoctorResponse{
		Message:    "Doctor invited successfully",
		DoctorID:   doc.DoctorID,
		Doctor:     doc,
		InviteSent: sent,
	})
}

func (s *Service) sendInvitation(ctx handler.Context, doc Doctor) error {
	if s.mailer == nil {
		return nil
	}

	msg, err := email.InvitationMessage(email.Invitation{
		DoctorID:       doc.DoctorID,
		Name:           doc.Name,
		Email:          doc.Email,
		Specialization: doc.Specialization,
		Hospital:       doc.Hospital,
		LicenseNumber:  doc.LicenseNumber,
		PortalURL:      s.portalURL,
		SupportEmail:   s.supportEmail,
	})
	if err != nil {
		return err
	}
	return s.mailer.SendEmail(ctx, msg)
}

type DoctorsResponse struct {
	Doctors []Doctor `json:"doctors"`
	Count   int      `json:"count"`
}

func (s *Service) listDoctors(ctx handler.Context, _ struct{}) handler.Response {
	objects, err := s.store.List(ctx, doctorsPrefix)
	if err != nil {
		return s.fail(ctx, errors.Join(ErrListFailed, err))
	}

	doctors := make([]Doctor, 0, len(objects))
	for _, obj := range objects {
		if !strings.HasSuffix(obj.Key, ".json") {
			continue
		}
		doc, err := s.loadDoctor(ctx, obj.Key)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotFound) {
				continue
			}
			return s.fail(ctx, err, logger.ObjectKey(obj.Key))
		}
		doctors = append(doctors, doc)
	}

	slices.SortStableFunc(doctors, func(a, b Doctor) int {
		return strings.Compare(b.CreatedAt, a.CreatedAt)
	})

	return handler.JSON(DoctorsResponse{Doctors: doctors, Count: len(doctors)})
}

func (s *Service) loadDoctor(ctx handler.Context, key string) (Doctor, error) {
	body, _, err := s.store.Get(ctx, key)
	if err != nil {
		return Doctor{}, err
	}

	var doc Doctor
	if err := json.Unmarshal(body, &doc); err != nil {
		return Doctor{}, errors.Join(ErrInvalidStoredRecord, fmt.Errorf("%s: %w", key, err))
	}
	return doc, nil
}
