// Package interfaces defines the contract between a host platform and its
// storage provider adapters, separating the contract from implementations.
//
// # Provider Contract
//
// StorageProvider: The capability set every adapter exposes. A provider
// declares static metadata (ProviderMetadata), a settings schema (Settings)
// and the subset of operations it really performs (Capabilities). The host
// calls the remaining operations anyway; they fail with UnsupportedOperationError.
//
// # Network Client
//
// DirectoryClient: Publishes a local directory tree to a content-addressed
// network and returns the identifier of its root.
//
// ClientFactory: Creates a fresh DirectoryClient per call so providers keep
// no state between operations.
//
// # Error Types
//
//   - ErrMethodNotImplemented: Canonical "METHOD_NOT_IMPLEMENTED" signal
//   - UnsupportedOperationError: Names the operation that was refused
//   - ErrUnknownOperation: Operation name outside the contract
//   - ErrMissingInstanceField: Required instance field not supplied
//   - ErrFolderNotFound, ErrNotADirectory: Upload source is unusable
//
// Errors raised by a DirectoryClient are not part of this package; they reach
// the host unchanged.
package interfaces
