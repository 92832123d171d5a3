package reports

import (
	"net/http"

	"github.com/cardmia/ecgportal/handler"
)

var (
	ErrUploadFailed = handler.HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "UPLOAD_FAILED",
		Message: "Failed to upload file to storage",
	}
	ErrListFailed = handler.HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "LIST_FAILED",
		Message: "Failed to fetch reports. Please try again.",
	}
	ErrMissingKey = handler.HTTPError{
		Status:  http.StatusBadRequest,
		Code:    "MISSING_KEY",
		Message: "Missing required parameter: key",
	}
	ErrInvalidJSONContent = handler.HTTPError{
		Status:  http.StatusBadRequest,
		Code:    "INVALID_JSON",
		Message: "Invalid JSON content",
	}
	ErrInvalidStoredRecord = handler.HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "INVALID_RECORD",
		Message: "Stored doctor record is not valid JSON",
	}
)
