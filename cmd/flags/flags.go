package flags

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ruteri/ipfs-storage-provider/common"
	"github.com/ruteri/ipfs-storage-provider/httpserver"
	"github.com/ruteri/ipfs-storage-provider/storage"
	"github.com/urfave/cli/v2"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	return SetupLoggerTo(cCtx, os.Stdout)
}

// SetupLoggerTo is SetupLogger writing to w. Command line tools that print
// results on stdout log to stderr.
func SetupLoggerTo(cCtx *cli.Context, w io.Writer) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String("log-service")

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
		Writer:  w,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *httpserver.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &httpserver.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		// Uploads of large folders stream for a long time before answering.
		WriteTimeout: 10 * time.Minute,
	}
}

// LoadPackageInfo reads the package manifest named by --package-manifest, or
// falls back to the build-time package description.
func LoadPackageInfo(cCtx *cli.Context) (common.PackageInfo, error) {
	manifestPath := cCtx.String(PackageManifestFlag.Name)
	if manifestPath == "" {
		return common.DefaultPackageInfo(), nil
	}

	f, err := os.Open(manifestPath)
	if err != nil {
		return common.PackageInfo{}, fmt.Errorf("failed to open package manifest: %w", err)
	}
	defer f.Close()

	return common.LoadPackageInfo(f)
}

// NewIPFSProvider builds the IPFS provider from the IPFS flags.
func NewIPFSProvider(cCtx *cli.Context, logger *slog.Logger) (*storage.IPFSProvider, error) {
	info, err := LoadPackageInfo(cCtx)
	if err != nil {
		return nil, err
	}

	policy, err := storage.ParseCredentialPolicy(cCtx.String(CredentialPolicyFlag.Name))
	if err != nil {
		return nil, err
	}

	return storage.NewIPFSProvider(info, storage.IPFSProviderConfig{
		Endpoint:         cCtx.String(IPFSEndpointFlag.Name),
		CredentialPolicy: policy,
		Clients: &storage.ShellClientFactory{
			Timeout:    cCtx.Duration(IPFSTimeoutFlag.Name),
			CidVersion: cCtx.Int(IPFSCidVersionFlag.Name),
		},
		Log: logger,
	}), nil
}

var LogJsonFlag = &cli.BoolFlag{
	Name:    "log-json",
	Value:   false,
	Usage:   "log in JSON format",
	EnvVars: []string{"LOG_JSON"},
}
var LogDebugFlag = &cli.BoolFlag{
	Name:    "log-debug",
	Value:   false,
	Usage:   "log debug messages",
	EnvVars: []string{"LOG_DEBUG"},
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}

var LogServiceFlagFn = func(service string) *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "log-service",
		Value: service,
		Usage: "add 'service' tag to logs",
	}
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:    "metrics-addr",
	Value:   "127.0.0.1:8090",
	Usage:   "address to listen on for Prometheus metrics",
	EnvVars: []string{"METRICS_ADDR"},
}

var IPFSEndpointFlag = &cli.StringFlag{
	Name:    "ipfs-endpoint",
	Value:   storage.DefaultIPFSEndpoint,
	Usage:   "IPFS API endpoint folders are uploaded to",
	EnvVars: []string{"IPFS_ENDPOINT"},
}
var IPFSTimeoutFlag = &cli.DurationFlag{
	Name:    "ipfs-timeout",
	Value:   0,
	Usage:   "timeout for each IPFS API request, 0 for none",
	EnvVars: []string{"IPFS_TIMEOUT"},
}
var IPFSCidVersionFlag = &cli.IntFlag{
	Name:  "ipfs-cid-version",
	Value: 0,
	Usage: "CID version of uploaded content, 0 keeps the node default",
}
var CredentialPolicyFlag = &cli.StringFlag{
	Name:    "credential-policy",
	Value:   "accept-all",
	Usage:   "how credentials are validated: 'accept-all' or 'reachable' (checks the IPFS endpoint is reachable)",
	EnvVars: []string{"CREDENTIAL_POLICY"},
}
var PackageManifestFlag = &cli.StringFlag{
	Name:    "package-manifest",
	Value:   "",
	Usage:   "package.json style manifest describing the provider; defaults to build information",
	EnvVars: []string{"PACKAGE_MANIFEST"},
}

var CommonFlags = []cli.Flag{
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	PprofFlag,
	DrainSecondsFlag,
	MetricsAddrFlag,
}

var IPFSFlags = []cli.Flag{
	IPFSEndpointFlag,
	IPFSTimeoutFlag,
	IPFSCidVersionFlag,
	CredentialPolicyFlag,
	PackageManifestFlag,
}
