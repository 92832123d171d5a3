// Package handler provides typed HTTP handlers for the report API.
//
// A HandlerFunc receives a Context and a request value already bound by one or more
// binders (see pkg/binder), and returns a Response. Wrap turns it into an
// http.HandlerFunc that can be mounted on any router:
//
//	type ReportsQuery struct {
//		DoctorID string `query:"doctorId"`
//		Status   string `query:"status"`
//	}
//
//	func listReports(ctx handler.Context, q ReportsQuery) handler.Response {
//		reports, err := svc.List(ctx, q.DoctorID, q.Status)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(reports)
//	}
//
//	r.Get("/api/doctor/reports", handler.Wrap(listReports,
//		handler.WithBinders(binder.Query()),
//		handler.WithErrorHandler(handler.NewErrorHandler(log)),
//	))
//
// # Responses
//
// Every JSON body is an Envelope:
//
//	{"success": true,  "data": {...}}
//	{"success": false, "error": {"code": "FILE_NOT_FOUND", "message": "File not found in storage"}}
//
// # Errors
//
// ClassifyError maps errors onto HTTPError values. An HTTPError anywhere in the chain
// wins; otherwise validation failures, malformed multipart bodies and binder errors
// become 400, storage.ErrObjectNotFound and storage.ErrEmptyObject become 404, timeouts
// become 504 and everything else is a 500 with a generic message. NewErrorHandler logs
// client errors at WARN and server errors at ERROR before rendering.
//
// # CORS
//
// CORS is router middleware. It sets the Access-Control-Allow-* headers on every
// response and answers OPTIONS preflight requests with 200.
package handler
