package common

// Version and PackageName are overridden at build time:
//
//	go build -ldflags "-X github.com/ruteri/ipfs-storage-provider/common.Version=v1.2.3"
var (
	Version     = "dev"
	PackageName = "ipfs-storage-provider"
)
