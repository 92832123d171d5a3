package lambdaproxy

import "errors"

var (
	ErrUnknownEvent    = errors.New("unrecognised API Gateway event")
	ErrMissingMethod   = errors.New("event has no HTTP method")
	ErrBuildingRequest = errors.New("failed to build HTTP request from event")
)
