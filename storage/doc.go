// Package storage implements storage provider adapters on top of IPFS.
//
// IPFSProvider satisfies interfaces.StorageProvider. It performs a single real
// operation, Upload, which publishes a local folder through the IPFS HTTP API
// and reports the root CID as the folderHash instance field:
//
//	provider := storage.NewIPFSProvider(common.DefaultPackageInfo(), storage.IPFSProviderConfig{
//		Endpoint: "http://127.0.0.1:5001",
//	})
//	result, err := provider.Upload(ctx, &interfaces.OperationRequest{
//		InstanceFields: map[string]string{storage.FieldFolderName: "./dist"},
//	})
//	// result.InstanceFields["folderHash"] == "Qm..."
//
// The provider holds no per-call state. Each operation obtains a fresh
// client from its interfaces.ClientFactory, by default a ShellClientFactory
// backed by github.com/ipfs/go-ipfs-api.
//
// # Credential Validation
//
// By default ValidateCredentials accepts every input without contacting the
// network (AcceptAllCredentials). ReachableCredentials reports whether the IPFS
// endpoint is reachable; the API key itself is still not verified.
//
// # Unsupported Operations
//
// Get, Delete, Duplicate, Move, Rename, CreateFolder and DeleteFolder always
// fail with *interfaces.UnsupportedOperationError. Dispatch routes host calls
// by name and refuses anything outside Capabilities() the same way.
//
// # Error Handling
//
// Failures of the IPFS client during Upload are returned unchanged so the host
// sees exactly what the client raised. Upload rejects a missing folderName, a
// missing folder and a regular file before any network call.
package storage
