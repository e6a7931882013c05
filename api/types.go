package api

import "github.com/ruteri/ipfs-storage-provider/interfaces"

// DescribeResponse is returned by GET /api/v1/provider.
type DescribeResponse struct {
	Metadata     interfaces.ProviderMetadata `json:"metadata"`
	Settings     interfaces.Settings         `json:"settings"`
	Capabilities []interfaces.Operation      `json:"capabilities"`
}

// ValidateCredentialsRequest is the body of POST /api/v1/credentials/validate.
type ValidateCredentialsRequest struct {
	Credentials map[string]string `json:"credentials"`
}

// ValidateCredentialsResponse reports the provider's answer.
type ValidateCredentialsResponse struct {
	Valid bool `json:"valid"`
}

// ErrorResponse is the body of every non-2xx response from the operations API.
type ErrorResponse struct {
	Error     string `json:"error"`
	Operation string `json:"operation,omitempty"`
}
