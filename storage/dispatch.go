package storage

import (
	"context"
	"fmt"
	"slices"

	"github.com/ruteri/ipfs-storage-provider/interfaces"
)

// Supports reports whether op is in the provider's declared capability set.
func Supports(provider interfaces.StorageProvider, op interfaces.Operation) bool {
	return slices.Contains(provider.Capabilities(), op)
}

// Dispatch routes a host call to the provider.
//
// Operations outside the provider's capabilities fail with an
// UnsupportedOperationError without reaching the provider. Names outside the
// contract fail with ErrUnknownOperation. A validateCredentials call reports
// its answer in OperationResult.Valid.
func Dispatch(ctx context.Context, provider interfaces.StorageProvider, op interfaces.Operation, req *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	if !slices.Contains(interfaces.AllOperations, op) {
		return nil, fmt.Errorf("%w: %q", interfaces.ErrUnknownOperation, op)
	}
	if !Supports(provider, op) {
		return nil, interfaces.Unsupported(op)
	}
	if req == nil {
		req = &interfaces.OperationRequest{}
	}

	switch op {
	case interfaces.OpValidateCredentials:
		valid, err := provider.ValidateCredentials(ctx, req.Credentials)
		if err != nil {
			return nil, err
		}
		return &interfaces.OperationResult{Valid: &valid}, nil
	case interfaces.OpUpload:
		return provider.Upload(ctx, req)
	case interfaces.OpGet:
		return provider.Get(ctx, req)
	case interfaces.OpDelete:
		return provider.Delete(ctx, req)
	case interfaces.OpDuplicate:
		return provider.Duplicate(ctx, req)
	case interfaces.OpMove:
		return provider.Move(ctx, req)
	case interfaces.OpRename:
		return provider.Rename(ctx, req)
	case interfaces.OpCreateFolder:
		return provider.CreateFolder(ctx, req)
	case interfaces.OpDeleteFolder:
		return provider.DeleteFolder(ctx, req)
	}
	return nil, interfaces.Unsupported(op)
}
