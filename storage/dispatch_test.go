package storage

import (
	"context"
	"testing"

	"github.com/ruteri/ipfs-storage-provider/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDispatch_Upload(t *testing.T) {
	client := new(MockDirectoryClient)
	client.On("AddDirectory", mock.Anything, "/work/dist", true).Return("QmRoot", nil)
	clients := new(MockClientFactory)
	clients.On("ClientFor", DefaultIPFSEndpoint).Return(client, nil)

	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	result, err := Dispatch(context.Background(), provider, interfaces.OpUpload, &interfaces.OperationRequest{
		InstanceFields: map[string]string{FieldFolderName: "/work/dist"},
	})
	require.NoError(t, err)
	assert.Equal(t, "QmRoot", result.InstanceFields[FieldFolderHash])
}

func TestDispatch_ValidateCredentials(t *testing.T) {
	provider, _ := newTestProvider(t, new(MockClientFactory), AcceptAllCredentials)

	result, err := Dispatch(context.Background(), provider, interfaces.OpValidateCredentials, nil)
	require.NoError(t, err)
	require.NotNil(t, result.Valid)
	assert.True(t, *result.Valid)
	assert.Empty(t, result.InstanceFields)
}

func TestDispatch_Unsupported(t *testing.T) {
	clients := new(MockClientFactory)
	provider, _ := newTestProvider(t, clients, AcceptAllCredentials)

	for _, op := range interfaces.AllOperations {
		if Supports(provider, op) {
			continue
		}
		t.Run(op.String(), func(t *testing.T) {
			result, err := Dispatch(context.Background(), provider, op, &interfaces.OperationRequest{})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, interfaces.ErrMethodNotImplemented)

			var unsupported *interfaces.UnsupportedOperationError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, op, unsupported.Operation)
		})
	}

	clients.AssertNotCalled(t, "ClientFor", mock.Anything)
}

func TestDispatch_UnknownOperation(t *testing.T) {
	provider, _ := newTestProvider(t, new(MockClientFactory), AcceptAllCredentials)

	_, err := Dispatch(context.Background(), provider, interfaces.Operation("list"), nil)
	assert.ErrorIs(t, err, interfaces.ErrUnknownOperation)
	assert.NotErrorIs(t, err, interfaces.ErrMethodNotImplemented)
}

func TestSupports(t *testing.T) {
	provider := NewIPFSProvider(testPackageInfo, IPFSProviderConfig{})

	assert.True(t, Supports(provider, interfaces.OpUpload))
	assert.True(t, Supports(provider, interfaces.OpValidateCredentials))
	for _, op := range []interfaces.Operation{
		interfaces.OpGet, interfaces.OpDelete, interfaces.OpDuplicate, interfaces.OpMove,
		interfaces.OpRename, interfaces.OpCreateFolder, interfaces.OpDeleteFolder,
	} {
		assert.False(t, Supports(provider, op), op)
	}
}
