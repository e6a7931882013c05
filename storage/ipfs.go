package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ruteri/ipfs-storage-provider/common"
	"github.com/ruteri/ipfs-storage-provider/interfaces"
	"github.com/ruteri/ipfs-storage-provider/metrics"
	"github.com/spf13/afero"
)

const (
	// DefaultIPFSEndpoint is the IPFS API every upload is sent to unless configured otherwise.
	DefaultIPFSEndpoint = "https://my-cool-ipfs-app.com/api/v1"

	ipfsLabel   = "IPFS"
	ipfsIconURL = "https://upload.wikimedia.org/wikipedia/commons/thumb/1/18/Ipfs-logo-1024-ice-text.png/600px-Ipfs-logo-1024-ice-text.png"
)

// Credential and instance field names recognized by the IPFS provider.
const (
	CredentialAPIKey = "apiKey"

	FieldFolderName = "folderName"
	FieldFolderHash = "folderHash"
)

// CredentialPolicy decides how ValidateCredentials answers.
type CredentialPolicy int

const (
	// AcceptAllCredentials accepts every credential set without contacting the network.
	AcceptAllCredentials CredentialPolicy = iota

	// ReachableCredentials reports whether the IPFS endpoint is reachable.
	ReachableCredentials
)

// String returns the policy name.
func (p CredentialPolicy) String() string {
	switch p {
	case AcceptAllCredentials:
		return "accept-all"
	case ReachableCredentials:
		return "reachable"
	default:
		return "unknown"
	}
}

// ParseCredentialPolicy converts a policy name into a CredentialPolicy.
func ParseCredentialPolicy(name string) (CredentialPolicy, error) {
	switch name {
	case "", "accept-all":
		return AcceptAllCredentials, nil
	case "reachable":
		return ReachableCredentials, nil
	default:
		return 0, fmt.Errorf("unknown credential policy: %s", name)
	}
}

// IPFSProviderConfig holds the collaborators of an IPFSProvider.
// Zero values are replaced with defaults.
type IPFSProviderConfig struct {
	// Endpoint is the IPFS API address. Defaults to DefaultIPFSEndpoint.
	Endpoint string

	// CredentialPolicy defaults to AcceptAllCredentials.
	CredentialPolicy CredentialPolicy

	// Clients creates the network client for each call. Defaults to a ShellClientFactory.
	Clients interfaces.ClientFactory

	// Fs is used to check the upload folder before publishing. Defaults to the OS filesystem.
	Fs afero.Fs

	Log *slog.Logger
}

// IPFSProvider is a storage provider that publishes a local folder to IPFS.
// It keeps no state between calls: every operation creates its own client.
type IPFSProvider struct {
	metadata interfaces.ProviderMetadata

	endpoint         string
	credentialPolicy CredentialPolicy
	clients          interfaces.ClientFactory
	fs               afero.Fs
	log              *slog.Logger
}

// NewIPFSProvider assembles the provider metadata from info and the fixed
// settings schema. It performs no I/O.
func NewIPFSProvider(info common.PackageInfo, cfg IPFSProviderConfig) *IPFSProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultIPFSEndpoint
	}
	if cfg.Clients == nil {
		cfg.Clients = &ShellClientFactory{}
	}
	if cfg.Fs == nil {
		cfg.Fs = afero.NewOsFs()
	}
	if cfg.Log == nil {
		cfg.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &IPFSProvider{
		metadata: interfaces.ProviderMetadata{
			ID:          info.PackageName,
			Name:        info.Name,
			Label:       ipfsLabel,
			Description: info.Description,
			Author:      info.Author,
			Version:     info.Version,
			IconURL:     ipfsIconURL,
		},
		endpoint:         cfg.Endpoint,
		credentialPolicy: cfg.CredentialPolicy,
		clients:          cfg.Clients,
		fs:               cfg.Fs,
		log:              cfg.Log.With(slog.String("provider", info.PackageName)),
	}
}

func ipfsSettings() interfaces.Settings {
	return interfaces.Settings{
		Authentications: map[interfaces.AuthenticationGroup][]interfaces.CredentialField{
			interfaces.AuthBasic: {
				{
					Name:        CredentialAPIKey,
					Label:       "API Key",
					Placeholder: "Your SDK API Key.",
					Type:        interfaces.InputKindPassword,
					IsRequired:  true,
				},
			},
		},
		InstanceFields: []interfaces.InstanceField{
			{
				Name:         FieldFolderName,
				Label:        "Destination Folder Name",
				Placeholder:  "./dist",
				IsRequired:   true,
				IsChangeable: false,
			},
			{
				Name:         FieldFolderHash,
				Label:        "Folder Hash",
				IsRequired:   false,
				IsChangeable: false,
			},
		},
	}
}

// Metadata returns the provider description.
func (p *IPFSProvider) Metadata() interfaces.ProviderMetadata {
	return p.metadata
}

// Settings returns a copy of the credential and instance field schema.
func (p *IPFSProvider) Settings() interfaces.Settings {
	return ipfsSettings()
}

// Capabilities returns the operations the IPFS provider performs.
func (p *IPFSProvider) Capabilities() []interfaces.Operation {
	return []interfaces.Operation{interfaces.OpValidateCredentials, interfaces.OpUpload}
}

// Endpoint returns the IPFS API address uploads are sent to.
func (p *IPFSProvider) Endpoint() string {
	return p.endpoint
}

// ValidateCredentials answers according to the configured policy.
// Under AcceptAllCredentials every input, including an empty one, is accepted
// without verifying the API key.
func (p *IPFSProvider) ValidateCredentials(ctx context.Context, credentials map[string]string) (bool, error) {
	if p.credentialPolicy != ReachableCredentials {
		metrics.RecordOperation(p.metadata.ID, interfaces.OpValidateCredentials.String(), metrics.OutcomeSuccess)
		return true, nil
	}

	client, err := p.clients.ClientFor(p.endpoint)
	if err != nil {
		metrics.RecordOperation(p.metadata.ID, interfaces.OpValidateCredentials.String(), metrics.OutcomeError)
		return false, fmt.Errorf("failed to create IPFS client: %w", err)
	}

	available := client.Available(ctx)
	if !available {
		p.log.Warn("IPFS endpoint unavailable during credential validation",
			slog.String("endpoint", p.endpoint))
	}
	metrics.RecordOperation(p.metadata.ID, interfaces.OpValidateCredentials.String(), metrics.OutcomeSuccess)
	return available, nil
}

// Upload publishes the folder named by the folderName instance field and
// returns its content identifier as the folderHash instance field.
//
// Errors raised by the network client are returned unchanged.
func (p *IPFSProvider) Upload(ctx context.Context, req *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	start := time.Now()

	folderName := req.InstanceField(FieldFolderName)
	if folderName == "" {
		p.recordUpload(metrics.OutcomeError, start)
		return nil, fmt.Errorf("%w: %s", interfaces.ErrMissingInstanceField, FieldFolderName)
	}

	if err := p.checkFolder(folderName); err != nil {
		p.log.Debug("Upload folder rejected", slog.String("folder", folderName), "err", err)
		p.recordUpload(metrics.OutcomeError, start)
		return nil, err
	}

	client, err := p.clients.ClientFor(p.endpoint)
	if err != nil {
		p.log.Error("Failed to create IPFS client", slog.String("endpoint", p.endpoint), "err", err)
		p.recordUpload(metrics.OutcomeError, start)
		return nil, err
	}

	folderHash, err := client.AddDirectory(ctx, folderName, true)
	if err != nil {
		p.log.Error("Failed to add folder to IPFS",
			slog.String("folder", folderName),
			slog.String("endpoint", p.endpoint),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		p.recordUpload(metrics.OutcomeError, start)
		return nil, err
	}

	p.log.Info("Uploaded folder to IPFS",
		slog.String("folder", folderName),
		slog.String("folderHash", folderHash),
		slog.Duration("duration", time.Since(start)))
	p.recordUpload(metrics.OutcomeSuccess, start)

	return &interfaces.OperationResult{
		InstanceFields: map[string]string{FieldFolderHash: folderHash},
	}, nil
}

// checkFolder makes sure path names an existing directory.
func (p *IPFSProvider) checkFolder(path string) error {
	info, err := p.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", interfaces.ErrFolderNotFound, path)
		}
		return fmt.Errorf("failed to stat folder %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", interfaces.ErrNotADirectory, path)
	}
	return nil
}

func (p *IPFSProvider) recordUpload(outcome string, start time.Time) {
	metrics.RecordOperation(p.metadata.ID, interfaces.OpUpload.String(), outcome)
	metrics.RecordUpload(p.metadata.ID, outcome, time.Since(start))
}

func (p *IPFSProvider) Get(_ context.Context, _ *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return nil, p.unsupported(interfaces.OpGet)
}

func (p *IPFSProvider) Delete(_ context.Context, _ *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return nil, p.unsupported(interfaces.OpDelete)
}

func (p *IPFSProvider) Duplicate(_ context.Context, _ *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return nil, p.unsupported(interfaces.OpDuplicate)
}

func (p *IPFSProvider) Move(_ context.Context, _ *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return nil, p.unsupported(interfaces.OpMove)
}

func (p *IPFSProvider) Rename(_ context.Context, _ *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return nil, p.unsupported(interfaces.OpRename)
}

func (p *IPFSProvider) CreateFolder(_ context.Context, _ *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return nil, p.unsupported(interfaces.OpCreateFolder)
}

func (p *IPFSProvider) DeleteFolder(_ context.Context, _ *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return nil, p.unsupported(interfaces.OpDeleteFolder)
}

func (p *IPFSProvider) unsupported(op interfaces.Operation) error {
	metrics.RecordOperation(p.metadata.ID, op.String(), metrics.OutcomeUnsupported)
	return interfaces.Unsupported(op)
}
