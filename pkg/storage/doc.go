// Package storage keeps uploaded reports and doctor records in an object store.
//
// The Storage interface covers what the report handlers need: whole-object Put and Get,
// prefix listing across all pages, existence checks and time-limited download URLs.
//
// Two implementations are provided:
//   - S3Storage: Amazon S3 and S3-compatible services (MinIO, LocalStack). Download URLs
//     are presigned GET requests.
//   - LocalStorage: a directory on disk for development. Content type and metadata live in
//     a ".meta.json" sidecar next to each object.
//
// # Usage
//
//	store, err := storage.New(ctx, cfg)
//	if err != nil {
//		return err
//	}
//
//	obj, err := store.Put(ctx, "doctor-reviewed-reports/DR-1/2025/01/02/r.pdf", pdf,
//		storage.WithContentType("application/pdf"),
//		storage.WithMetadata(map[string]string{"doctorId": "DR-1"}),
//	)
//
//	url, err := store.URL(ctx, obj.Key)
//
// # Errors
//
// Backend errors are classified into the sentinels in errors.go, so callers can branch on
// errors.Is(err, storage.ErrObjectNotFound) regardless of the backend. Keys that are empty
// or contain a ".." segment fail with ErrInvalidKey before any I/O.
package storage
