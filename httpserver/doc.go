/*
Package httpserver exposes a storage provider to an out-of-process host over HTTP.

The server wraps a single interfaces.StorageProvider. Every operation is
routed through storage.Dispatch, so operations outside the provider's
capabilities are refused with the canonical METHOD_NOT_IMPLEMENTED signal
before the provider is reached.

# Endpoints

  - GET  /api/v1/provider: metadata, settings schema and capabilities
  - POST /api/v1/credentials/validate: credential validation
  - POST /api/v1/operations/{operation}: any contract operation
  - GET  /livez, /readyz: liveness and readiness
  - GET  /drain, /undrain: toggle readiness for load balancer draining

# Status Codes

  - 501 Not Implemented: operation outside the provider's capabilities
  - 404 Not Found: operation name outside the contract
  - 400 Bad Request: malformed body, missing or unusable instance fields
  - 502 Bad Gateway: the storage network client failed

Metrics are served on a separate listener (HTTPServerConfig.MetricsAddr) and
pprof can be mounted under /debug.
*/
package httpserver
