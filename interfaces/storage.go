package interfaces

import (
	"context"
	"fmt"
)

// Operation names an entry point of the storage provider contract.
type Operation string

const (
	OpValidateCredentials Operation = "validateCredentials"
	OpUpload              Operation = "upload"
	OpGet                 Operation = "get"
	OpDelete              Operation = "delete"
	OpDuplicate           Operation = "duplicate"
	OpMove                Operation = "move"
	OpRename              Operation = "rename"
	OpCreateFolder        Operation = "createFolder"
	OpDeleteFolder        Operation = "deleteFolder"
)

// AllOperations lists every operation a storage provider must answer, in contract order.
var AllOperations = []Operation{
	OpValidateCredentials,
	OpUpload,
	OpGet,
	OpDelete,
	OpDuplicate,
	OpMove,
	OpRename,
	OpCreateFolder,
	OpDeleteFolder,
}

// ParseOperation converts an operation name into an Operation.
func ParseOperation(name string) (Operation, error) {
	for _, op := range AllOperations {
		if string(op) == name {
			return op, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// String returns the operation name.
func (op Operation) String() string {
	return string(op)
}

// InputKind tells the host how to render a credential input.
type InputKind string

const (
	InputKindText     InputKind = "text"
	InputKindPassword InputKind = "password"
)

// AuthenticationGroup names a set of credentials that authenticate together.
type AuthenticationGroup string

// AuthBasic is the only authentication group used by storage providers.
const AuthBasic AuthenticationGroup = "BASIC"

// ProviderMetadata describes a provider to the host. It is set once at
// construction and never mutated.
type ProviderMetadata struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Version     string `json:"version"`
	IconURL     string `json:"iconURL"`
}

// CredentialField declares a credential the host collects from the user.
type CredentialField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Type        InputKind `json:"type"`
	IsRequired  bool      `json:"isRequired"`
}

// InstanceField declares a per-instance value the host stores and passes back
// on every call.
type InstanceField struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	Placeholder  string `json:"placeholder,omitempty"`
	IsRequired   bool   `json:"isRequired"`
	IsChangeable bool   `json:"isChangeable"`
}

// Settings is the schema a provider declares for credentials and instance fields.
type Settings struct {
	Authentications map[AuthenticationGroup][]CredentialField `json:"authentications"`
	InstanceFields  []InstanceField                           `json:"instanceFields"`
}

// OperationRequest bundles everything the host resolves for a single call.
// It is built per call and never retained by the provider.
type OperationRequest struct {
	Credentials    map[string]string `json:"credentials,omitempty"`
	InstanceFields map[string]string `json:"instanceFields,omitempty"`
	Params         map[string]string `json:"params,omitempty"`
}

// InstanceField returns the named instance field value, or "" if it is unset.
func (r *OperationRequest) InstanceField(name string) string {
	if r == nil || r.InstanceFields == nil {
		return ""
	}
	return r.InstanceFields[name]
}

// OperationResult carries the instance field updates produced by an operation.
// Valid is only set for credential validation.
type OperationResult struct {
	InstanceFields map[string]string `json:"instanceFields,omitempty"`
	Valid          *bool             `json:"valid,omitempty"`
}

// StorageProvider is the capability set a host requires of every storage adapter.
// Operations a provider does not support fail with an UnsupportedOperationError.
type StorageProvider interface {
	// Metadata returns the static provider description.
	Metadata() ProviderMetadata

	// Settings returns the credential and instance field schema.
	Settings() Settings

	// Capabilities returns the operations this provider actually performs.
	Capabilities() []Operation

	ValidateCredentials(ctx context.Context, credentials map[string]string) (bool, error)
	Upload(ctx context.Context, req *OperationRequest) (*OperationResult, error)
	Get(ctx context.Context, req *OperationRequest) (*OperationResult, error)
	Delete(ctx context.Context, req *OperationRequest) (*OperationResult, error)
	Duplicate(ctx context.Context, req *OperationRequest) (*OperationResult, error)
	Move(ctx context.Context, req *OperationRequest) (*OperationResult, error)
	Rename(ctx context.Context, req *OperationRequest) (*OperationResult, error)
	CreateFolder(ctx context.Context, req *OperationRequest) (*OperationResult, error)
	DeleteFolder(ctx context.Context, req *OperationRequest) (*OperationResult, error)
}

// DirectoryClient is the network client used to publish a directory tree.
type DirectoryClient interface {
	// AddDirectory transmits the tree rooted at path and returns the content
	// identifier of its root once everything has been sent.
	AddDirectory(ctx context.Context, path string, recursive bool) (string, error)

	// Available checks if the endpoint answers.
	Available(ctx context.Context) bool
}

// ClientFactory creates a fresh DirectoryClient for an endpoint.
type ClientFactory interface {
	ClientFor(endpoint string) (DirectoryClient, error)
}
