package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ruteri/ipfs-storage-provider/api"
	"github.com/ruteri/ipfs-storage-provider/interfaces"
	"github.com/ruteri/ipfs-storage-provider/storage"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// Handler exposes a storage provider over HTTP.
type Handler struct {
	provider interfaces.StorageProvider
	log      *slog.Logger
}

// NewHandler creates a new HTTP request handler for provider.
func NewHandler(provider interfaces.StorageProvider, log *slog.Logger) *Handler {
	return &Handler{
		provider: provider,
		log:      log,
	}
}

// HandleDescribe returns the provider metadata, settings schema and capabilities.
//
// URL format: GET /api/v1/provider
func (h *Handler) HandleDescribe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.DescribeResponse{
		Metadata:     h.provider.Metadata(),
		Settings:     h.provider.Settings(),
		Capabilities: h.provider.Capabilities(),
	})
}

// HandleValidateCredentials asks the provider whether the supplied credentials are valid.
//
// URL format: POST /api/v1/credentials/validate
// Request body: {"credentials": {"apiKey": "..."}}
func (h *Handler) HandleValidateCredentials(w http.ResponseWriter, r *http.Request) {
	var req api.ValidateCredentialsRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.log.Debug("Invalid credentials request body", "err", err)
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := storage.Dispatch(r.Context(), h.provider, interfaces.OpValidateCredentials,
		&interfaces.OperationRequest{Credentials: req.Credentials})
	if err != nil {
		h.writeOperationError(w, interfaces.OpValidateCredentials, err)
		return
	}

	writeJSON(w, http.StatusOK, api.ValidateCredentialsResponse{Valid: result.Valid != nil && *result.Valid})
}

// HandleOperation runs a provider operation.
//
// URL format: POST /api/v1/operations/{operation}
// Request body: interfaces.OperationRequest, may be empty
//
// Response: interfaces.OperationResult, or api.ErrorResponse with
//   - 501 for operations the provider does not implement
//   - 404 for names outside the provider contract
//   - 400 for missing or unusable instance fields
//   - 502 for failures of the storage network
func (h *Handler) HandleOperation(w http.ResponseWriter, r *http.Request) {
	opName := chi.URLParam(r, "operation")
	op, err := interfaces.ParseOperation(opName)
	if err != nil {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: err.Error(), Operation: opName})
		return
	}

	var req interfaces.OperationRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.log.Debug("Invalid operation request body", "err", err, slog.String("operation", opName))
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body", Operation: opName})
		return
	}

	result, err := storage.Dispatch(r.Context(), h.provider, op, &req)
	if err != nil {
		h.writeOperationError(w, op, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeOperationError(w http.ResponseWriter, op interfaces.Operation, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, interfaces.ErrMethodNotImplemented):
		status = http.StatusNotImplemented
	case errors.Is(err, interfaces.ErrUnknownOperation):
		status = http.StatusNotFound
	case errors.Is(err, interfaces.ErrMissingInstanceField),
		errors.Is(err, interfaces.ErrFolderNotFound),
		errors.Is(err, interfaces.ErrNotADirectory):
		status = http.StatusBadRequest
	default:
		h.log.Error("Provider operation failed", "err", err, slog.String("operation", op.String()))
	}

	writeJSON(w, status, api.ErrorResponse{Error: err.Error(), Operation: op.String()})
}

// decodeBody decodes a JSON body into v. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	err := json.NewDecoder(body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"status": message})
}
