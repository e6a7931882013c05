// Package clients provides a Go client for the storage provider HTTP bridge.
//
// ProviderClient mirrors the in-process StorageProvider calls: Describe,
// ValidateCredentials and Invoke. Responses carrying the canonical
// METHOD_NOT_IMPLEMENTED signal are turned back into
// *interfaces.UnsupportedOperationError so callers can use errors.Is with
// interfaces.ErrMethodNotImplemented regardless of transport.
package clients
