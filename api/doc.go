/*
Package api holds the wire types of the storage provider HTTP bridge.

The bridge (package httpserver) exposes a single StorageProvider to a host
that runs out of process. The clients subpackage is the matching Go client.

# API Structure

	GET  /api/v1/provider                 DescribeResponse
	POST /api/v1/credentials/validate     ValidateCredentialsRequest -> ValidateCredentialsResponse
	POST /api/v1/operations/{operation}   interfaces.OperationRequest -> interfaces.OperationResult

Failures are reported as ErrorResponse. An operation the provider does not
support answers 501 with error "METHOD_NOT_IMPLEMENTED".
*/
package api
