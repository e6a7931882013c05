package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ruteri/ipfs-storage-provider/common"
	"github.com/ruteri/ipfs-storage-provider/interfaces"
	"github.com/ruteri/ipfs-storage-provider/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAssignments(t *testing.T) {
	parsed, err := parseAssignments([]string{"folderName=./dist", "empty=", "url=http://a/b?c=d"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"folderName": "./dist",
		"empty":      "",
		"url":        "http://a/b?c=d",
	}, parsed)

	_, err = parseAssignments([]string{"novalue"})
	assert.Error(t, err)

	_, err = parseAssignments([]string{"=value"})
	assert.Error(t, err)
}

func TestLocalRunner(t *testing.T) {
	runner := &localRunner{provider: storage.NewIPFSProvider(common.DefaultPackageInfo(), storage.IPFSProviderConfig{})}
	ctx := context.Background()

	described, err := runner.Describe(ctx)
	require.NoError(t, err)
	assert.Equal(t, common.PackageName, described.Metadata.ID)

	valid, err := runner.ValidateCredentials(ctx, nil)
	require.NoError(t, err)
	assert.True(t, valid)

	_, err = runner.Invoke(ctx, interfaces.OpDuplicate, nil)
	assert.ErrorIs(t, err, interfaces.ErrMethodNotImplemented)
}

func TestUploadCommand_LogsToErrWriter(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v0/add", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Name":"dist","Hash":"QmRoot"}` + "\n"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	dir := filepath.Join(t.TempDir(), "dist")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html></html>"), 0o644))

	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run([]string{"ipfs-storage-plugin", "--log-debug", "--ipfs-endpoint", server.URL, "upload", "--folder", dir})
	require.NoError(t, err)

	var result interfaces.OperationResult
	dec := json.NewDecoder(&stdout)
	require.NoError(t, dec.Decode(&result))
	assert.False(t, dec.More())
	assert.Equal(t, map[string]string{storage.FieldFolderHash: "QmRoot"}, result.InstanceFields)

	assert.Contains(t, stderr.String(), "Uploaded folder to IPFS")
}
