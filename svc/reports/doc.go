// Package reports serves the ECG portal's doctor and admin endpoints.
//
// Doctors receive assigned reports under doctor-assigned-reports/{doctorId}/ and send
// reviewed ones back under doctor-reviewed-reports/{doctorId}/. Doctor records live at
// doctors/{doctorId}.json. All three uploads arrive as multipart/form-data and are decoded
// by pkg/formdata through binder.Multipart; the file part is chosen per route:
//
//	POST /api/doctor/upload            pdfFile
//	POST /api/doctor/upload-assigned   file
//	POST /api/doctor/upload-reviewed   reviewedPdf
//
// Read endpoints list reports with presigned URLs (GET /api/doctor/reports), list doctors
// (GET /admin/doctor) and return a stored object's content (GET /api/s3-file-content).
// POST /admin/create-doctor stores a new doctor and emails an invitation.
//
// Every response is a handler.Envelope. Mount the router returned by Service.Handle
// behind requestid.Middleware and handler.CORS.
package reports
