// Package requestid assigns every API request an identifier and makes it available to
// handlers and logs.
//
// Middleware accepts a well-formed X-Request-ID from the client, falls back to the API
// Gateway request ID forwarded by the Lambda adapter, and generates a UUID otherwise.
// LogExtractor plugs the ID into logger.New:
//
//	log := logger.New(logger.WithContextExtractors(requestid.LogExtractor()))
package requestid
