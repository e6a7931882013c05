// Package main (cmd/httpserver) serves the IPFS storage provider over HTTP.
//
// A host platform that cannot load the provider in process talks to this
// server instead: it fetches the provider description, validates credentials
// and invokes operations through the JSON API documented in package api.
//
// The IPFS endpoint defaults to the provider's built-in address and can be
// changed with --ipfs-endpoint. Credentials are accepted without verification
// unless --credential-policy=reachable is given, in which case validation reports
// whether the IPFS endpoint answers.
//
// The server implements graceful shutdown on receiving termination signals (SIGINT/SIGTERM)
// and supports health checks, drain/undrain, metrics and optional profiling endpoints.
//
// Example usage:
//
//	provider-server --listen-addr=0.0.0.0:8080 \
//	    --ipfs-endpoint=http://127.0.0.1:5001 \
//	    --package-manifest=./package.json
package main
