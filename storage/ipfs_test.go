package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/ruteri/ipfs-storage-provider/common"
	"github.com/ruteri/ipfs-storage-provider/interfaces"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDirectoryClient implements interfaces.DirectoryClient for testing
type MockDirectoryClient struct {
	mock.Mock
}

func (m *MockDirectoryClient) AddDirectory(ctx context.Context, path string, recursive bool) (string, error) {
	args := m.Called(ctx, path, recursive)
	return args.String(0), args.Error(1)
}

func (m *MockDirectoryClient) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockClientFactory implements interfaces.ClientFactory for testing
type MockClientFactory struct {
	mock.Mock
}

func (m *MockClientFactory) ClientFor(endpoint string) (interfaces.DirectoryClient, error) {
	args := m.Called(endpoint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.DirectoryClient), args.Error(1)
}

var testPackageInfo = common.PackageInfo{
	PackageName: "@fleekhq/plugin-storage-ipfs",
	Name:        "plugin-storage-ipfs",
	Author:      "Fleek",
	Version:     "0.1.0",
	Description: "IPFS storage plugin",
}

func newTestProvider(t *testing.T, clients interfaces.ClientFactory, policy CredentialPolicy) (*IPFSProvider, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work/dist/assets", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/work/dist/index.html", []byte("<html></html>"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/work/dist/assets/app.js", []byte("console.log(1)"), 0o644))

	provider := NewIPFSProvider(testPackageInfo, IPFSProviderConfig{
		CredentialPolicy: policy,
		Clients:          clients,
		Fs:               fs,
		Log:              slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return provider, fs
}

func TestNewIPFSProvider_Metadata(t *testing.T) {
	clients := new(MockClientFactory)
	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	assert.Equal(t, interfaces.ProviderMetadata{
		ID:          "@fleekhq/plugin-storage-ipfs",
		Name:        "plugin-storage-ipfs",
		Label:       "IPFS",
		Description: "IPFS storage plugin",
		Author:      "Fleek",
		Version:     "0.1.0",
		IconURL:     ipfsIconURL,
	}, provider.Metadata())
	assert.Equal(t, DefaultIPFSEndpoint, provider.Endpoint())

	// Construction must not reach the network.
	clients.AssertNotCalled(t, "ClientFor", mock.Anything)
}

func TestNewIPFSProvider_Idempotent(t *testing.T) {
	first := NewIPFSProvider(testPackageInfo, IPFSProviderConfig{})
	second := NewIPFSProvider(testPackageInfo, IPFSProviderConfig{})

	assert.Equal(t, first.Metadata(), second.Metadata())
	assert.Equal(t, first.Settings(), second.Settings())
	assert.Equal(t, first.Capabilities(), second.Capabilities())
}

func TestIPFSProvider_Settings(t *testing.T) {
	provider := NewIPFSProvider(testPackageInfo, IPFSProviderConfig{})
	settings := provider.Settings()

	require.Len(t, settings.Authentications, 1)
	basic := settings.Authentications[interfaces.AuthBasic]
	require.Len(t, basic, 1)
	assert.Equal(t, CredentialAPIKey, basic[0].Name)
	assert.Equal(t, interfaces.InputKindPassword, basic[0].Type)
	assert.True(t, basic[0].IsRequired)

	require.Len(t, settings.InstanceFields, 2)
	assert.Equal(t, FieldFolderName, settings.InstanceFields[0].Name)
	assert.True(t, settings.InstanceFields[0].IsRequired)
	assert.False(t, settings.InstanceFields[0].IsChangeable)
	assert.Equal(t, FieldFolderHash, settings.InstanceFields[1].Name)
	assert.False(t, settings.InstanceFields[1].IsRequired)
	assert.False(t, settings.InstanceFields[1].IsChangeable)

	// Callers cannot alter the schema through the returned value.
	settings.InstanceFields[0].IsRequired = false
	assert.True(t, provider.Settings().InstanceFields[0].IsRequired)
}

func TestIPFSProvider_ValidateCredentials_AcceptAll(t *testing.T) {
	clients := new(MockClientFactory)
	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	inputs := []map[string]string{
		nil,
		{},
		{CredentialAPIKey: ""},
		{CredentialAPIKey: "definitely-not-a-key"},
	}
	for _, credentials := range inputs {
		valid, err := provider.ValidateCredentials(context.Background(), credentials)
		require.NoError(t, err)
		assert.True(t, valid)
	}

	clients.AssertNotCalled(t, "ClientFor", mock.Anything)
}

func TestIPFSProvider_ValidateCredentials_Reachable(t *testing.T) {
	tests := []struct {
		name      string
		available bool
	}{
		{name: "endpoint up", available: true},
		{name: "endpoint down", available: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockDirectoryClient)
			client.On("Available", mock.Anything).Return(tt.available)
			clients := new(MockClientFactory)
			clients.On("ClientFor", DefaultIPFSEndpoint).Return(client, nil)

			provider, _ := newTestProvider(t, clients, ReachableCredentials)

			valid, err := provider.ValidateCredentials(context.Background(), map[string]string{CredentialAPIKey: "k"})
			require.NoError(t, err)
			assert.Equal(t, tt.available, valid)

			client.AssertExpectations(t)
			clients.AssertExpectations(t)
		})
	}
}

func TestIPFSProvider_Upload(t *testing.T) {
	client := new(MockDirectoryClient)
	client.On("AddDirectory", mock.Anything, "/work/dist", true).Return("Qm123", nil)
	clients := new(MockClientFactory)
	clients.On("ClientFor", DefaultIPFSEndpoint).Return(client, nil)

	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	result, err := provider.Upload(context.Background(), &interfaces.OperationRequest{
		Credentials:    map[string]string{CredentialAPIKey: "k"},
		InstanceFields: map[string]string{FieldFolderName: "/work/dist"},
	})
	require.NoError(t, err)
	assert.Equal(t, &interfaces.OperationResult{
		InstanceFields: map[string]string{FieldFolderHash: "Qm123"},
	}, result)

	client.AssertExpectations(t)
	clients.AssertExpectations(t)
}

func TestIPFSProvider_Upload_FreshClientPerCall(t *testing.T) {
	clients := new(MockClientFactory)
	for _, folder := range []string{"/work/dist", "/work/dist/assets"} {
		client := new(MockDirectoryClient)
		client.On("AddDirectory", mock.Anything, folder, true).Return("Qm"+folder, nil).Once()
		clients.On("ClientFor", DefaultIPFSEndpoint).Return(client, nil).Once()
	}

	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	for _, folder := range []string{"/work/dist", "/work/dist/assets"} {
		result, err := provider.Upload(context.Background(), &interfaces.OperationRequest{
			InstanceFields: map[string]string{FieldFolderName: folder},
		})
		require.NoError(t, err)
		assert.Equal(t, "Qm"+folder, result.InstanceFields[FieldFolderHash])
	}

	clients.AssertNumberOfCalls(t, "ClientFor", 2)
}

func TestIPFSProvider_Upload_ClientErrorUnwrapped(t *testing.T) {
	clientErr := errors.New("connection refused")

	client := new(MockDirectoryClient)
	client.On("AddDirectory", mock.Anything, "/work/dist", true).Return("", clientErr)
	clients := new(MockClientFactory)
	clients.On("ClientFor", DefaultIPFSEndpoint).Return(client, nil)

	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	result, err := provider.Upload(context.Background(), &interfaces.OperationRequest{
		InstanceFields: map[string]string{FieldFolderName: "/work/dist"},
	})
	assert.Nil(t, result)
	assert.Same(t, clientErr, err)
}

func TestIPFSProvider_Upload_InvalidFolder(t *testing.T) {
	tests := []struct {
		name        string
		fields      map[string]string
		expectedErr error
	}{
		{
			name:        "missing folder name",
			fields:      nil,
			expectedErr: interfaces.ErrMissingInstanceField,
		},
		{
			name:        "empty folder name",
			fields:      map[string]string{FieldFolderName: ""},
			expectedErr: interfaces.ErrMissingInstanceField,
		},
		{
			name:        "folder does not exist",
			fields:      map[string]string{FieldFolderName: "/work/build"},
			expectedErr: interfaces.ErrFolderNotFound,
		},
		{
			name:        "folder is a file",
			fields:      map[string]string{FieldFolderName: "/work/dist/index.html"},
			expectedErr: interfaces.ErrNotADirectory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clients := new(MockClientFactory)
			provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

			result, err := provider.Upload(context.Background(), &interfaces.OperationRequest{InstanceFields: tt.fields})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.expectedErr)

			clients.AssertNotCalled(t, "ClientFor", mock.Anything)
		})
	}
}

func TestIPFSProvider_UnsupportedOperations(t *testing.T) {
	clients := new(MockClientFactory)
	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	ctx := context.Background()
	stubs := map[interfaces.Operation]func(context.Context, *interfaces.OperationRequest) (*interfaces.OperationResult, error){
		interfaces.OpGet:          provider.Get,
		interfaces.OpDelete:       provider.Delete,
		interfaces.OpDuplicate:    provider.Duplicate,
		interfaces.OpMove:         provider.Move,
		interfaces.OpRename:       provider.Rename,
		interfaces.OpCreateFolder: provider.CreateFolder,
		interfaces.OpDeleteFolder: provider.DeleteFolder,
	}
	requests := []*interfaces.OperationRequest{
		nil,
		{},
		{
			Credentials:    map[string]string{CredentialAPIKey: "k"},
			InstanceFields: map[string]string{FieldFolderName: "/work/dist"},
			Params:         map[string]string{"path": "index.html"},
		},
	}

	for op, stub := range stubs {
		for _, req := range requests {
			result, err := stub(ctx, req)
			assert.Nil(t, result, op)
			require.ErrorIs(t, err, interfaces.ErrMethodNotImplemented, op)
			assert.Equal(t, interfaces.MethodNotImplemented, err.Error())

			var unsupported *interfaces.UnsupportedOperationError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, op, unsupported.Operation)
		}
	}

	clients.AssertNotCalled(t, "ClientFor", mock.Anything)
}

func TestParseCredentialPolicy(t *testing.T) {
	policy, err := ParseCredentialPolicy("")
	require.NoError(t, err)
	assert.Equal(t, AcceptAllCredentials, policy)

	policy, err = ParseCredentialPolicy("reachable")
	require.NoError(t, err)
	assert.Equal(t, ReachableCredentials, policy)
	assert.Equal(t, "reachable", policy.String())

	_, err = ParseCredentialPolicy("strict")
	assert.Error(t, err)
}
