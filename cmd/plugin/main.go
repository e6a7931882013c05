package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/ruteri/ipfs-storage-provider/api"
	"github.com/ruteri/ipfs-storage-provider/api/clients"
	"github.com/ruteri/ipfs-storage-provider/cmd/flags"
	"github.com/ruteri/ipfs-storage-provider/interfaces"
	"github.com/ruteri/ipfs-storage-provider/storage"
	"github.com/urfave/cli/v2"
)

// providerRunner is satisfied both by the in-process provider and by the HTTP bridge client.
type providerRunner interface {
	Describe(ctx context.Context) (*api.DescribeResponse, error)
	ValidateCredentials(ctx context.Context, credentials map[string]string) (bool, error)
	Invoke(ctx context.Context, op interfaces.Operation, req *interfaces.OperationRequest) (*interfaces.OperationResult, error)
}

type localRunner struct {
	provider interfaces.StorageProvider
}

func (l *localRunner) Describe(ctx context.Context) (*api.DescribeResponse, error) {
	return &api.DescribeResponse{
		Metadata:     l.provider.Metadata(),
		Settings:     l.provider.Settings(),
		Capabilities: l.provider.Capabilities(),
	}, nil
}

func (l *localRunner) ValidateCredentials(ctx context.Context, credentials map[string]string) (bool, error) {
	return l.provider.ValidateCredentials(ctx, credentials)
}

func (l *localRunner) Invoke(ctx context.Context, op interfaces.Operation, req *interfaces.OperationRequest) (*interfaces.OperationResult, error) {
	return storage.Dispatch(ctx, l.provider, op, req)
}

var (
	serverFlag = &cli.StringFlag{
		Name:    "server",
		Usage:   "address of a provider-server to run operations against instead of running them in process",
		EnvVars: []string{"PROVIDER_SERVER"},
	}
	apiKeyFlag = &cli.StringFlag{
		Name:    "api-key",
		Usage:   "API key passed as the apiKey credential",
		EnvVars: []string{"IPFS_API_KEY"},
	}
	folderFlag = &cli.StringFlag{
		Name:     "folder",
		Aliases:  []string{"f"},
		Required: true,
		Usage:    "local folder to upload",
	}
	instanceFieldFlag = &cli.StringSliceFlag{
		Name:  "instance-field",
		Usage: "instance field as name=value, may be repeated",
	}
	paramFlag = &cli.StringSliceFlag{
		Name:  "param",
		Usage: "operation parameter as name=value, may be repeated",
	}
)

func newRunner(cCtx *cli.Context, logger *slog.Logger) (providerRunner, error) {
	if addr := cCtx.String(serverFlag.Name); addr != "" {
		logger.Debug("Using remote provider", "server", addr)
		return &clients.ProviderClient{ServerAddr: addr}, nil
	}

	provider, err := flags.NewIPFSProvider(cCtx, logger)
	if err != nil {
		return nil, err
	}
	return &localRunner{provider: provider}, nil
}

func credentials(cCtx *cli.Context) map[string]string {
	creds := map[string]string{}
	if apiKey := cCtx.String(apiKeyFlag.Name); apiKey != "" {
		creds[storage.CredentialAPIKey] = apiKey
	}
	return creds
}

func parseAssignments(values []string) (map[string]string, error) {
	parsed := make(map[string]string, len(values))
	for _, value := range values {
		name, v, ok := strings.Cut(value, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", value)
		}
		parsed[name] = v
	}
	return parsed, nil
}

func setupLogger(cCtx *cli.Context) *slog.Logger {
	return flags.SetupLoggerTo(cCtx, cCtx.App.ErrWriter)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newApp() *cli.App {
	globalFlags := []cli.Flag{
		serverFlag,
		apiKeyFlag,
		flags.LogJsonFlag,
		flags.LogDebugFlag,
		flags.LogUidFlag,
		flags.LogServiceFlagFn("ipfs-storage-plugin"),
	}
	globalFlags = append(globalFlags, flags.IPFSFlags...)

	return &cli.App{
		Name:  "ipfs-storage-plugin",
		Usage: "Run IPFS storage provider operations from the command line",
		Flags: globalFlags,
		Commands: []*cli.Command{
			{
				Name:  "describe",
				Usage: "Print provider metadata, settings schema and capabilities",
				Action: func(cCtx *cli.Context) error {
					runner, err := newRunner(cCtx, setupLogger(cCtx))
					if err != nil {
						return err
					}
					described, err := runner.Describe(cCtx.Context)
					if err != nil {
						return err
					}
					return printJSON(cCtx.App.Writer, described)
				},
			},
			{
				Name:  "validate-credentials",
				Usage: "Validate the API key",
				Action: func(cCtx *cli.Context) error {
					runner, err := newRunner(cCtx, setupLogger(cCtx))
					if err != nil {
						return err
					}
					valid, err := runner.ValidateCredentials(cCtx.Context, credentials(cCtx))
					if err != nil {
						return err
					}
					if err := printJSON(cCtx.App.Writer, api.ValidateCredentialsResponse{Valid: valid}); err != nil {
						return err
					}
					if !valid {
						return cli.Exit("credentials rejected", 1)
					}
					return nil
				},
			},
			{
				Name:  "upload",
				Usage: "Upload a folder and print its folder hash",
				Flags: []cli.Flag{folderFlag},
				Action: func(cCtx *cli.Context) error {
					logger := setupLogger(cCtx)
					runner, err := newRunner(cCtx, logger)
					if err != nil {
						return err
					}

					result, err := runner.Invoke(cCtx.Context, interfaces.OpUpload, &interfaces.OperationRequest{
						Credentials:    credentials(cCtx),
						InstanceFields: map[string]string{storage.FieldFolderName: cCtx.String(folderFlag.Name)},
					})
					if err != nil {
						logger.Error("Upload failed", "err", err)
						return err
					}
					return printJSON(cCtx.App.Writer, result)
				},
			},
			{
				Name:      "invoke",
				Usage:     "Invoke any provider operation",
				ArgsUsage: "<operation>",
				Flags:     []cli.Flag{instanceFieldFlag, paramFlag},
				Action: func(cCtx *cli.Context) error {
					if cCtx.NArg() != 1 {
						return cli.Exit("expected exactly one operation name", 2)
					}
					op, err := interfaces.ParseOperation(cCtx.Args().First())
					if err != nil {
						return err
					}

					fields, err := parseAssignments(cCtx.StringSlice(instanceFieldFlag.Name))
					if err != nil {
						return err
					}
					params, err := parseAssignments(cCtx.StringSlice(paramFlag.Name))
					if err != nil {
						return err
					}

					runner, err := newRunner(cCtx, setupLogger(cCtx))
					if err != nil {
						return err
					}

					result, err := runner.Invoke(cCtx.Context, op, &interfaces.OperationRequest{
						Credentials:    credentials(cCtx),
						InstanceFields: fields,
						Params:         params,
					})
					if errors.Is(err, interfaces.ErrMethodNotImplemented) {
						return cli.Exit(fmt.Sprintf("%s: %s", op, interfaces.MethodNotImplemented), 3)
					}
					if err != nil {
						return err
					}
					return printJSON(cCtx.App.Writer, result)
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
