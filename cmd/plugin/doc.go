// Package main (cmd/plugin) runs IPFS storage provider operations from the
// command line, either in process or against a running provider-server
// (--server).
//
// Example usage:
//
//	ipfs-storage-plugin --ipfs-endpoint=http://127.0.0.1:5001 upload --folder ./dist
//	ipfs-storage-plugin describe
//	ipfs-storage-plugin --server=http://127.0.0.1:8080 invoke rename --param from=a --param to=b
package main
