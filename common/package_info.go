package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	// ErrInvalidManifest is returned when a package manifest cannot be decoded.
	ErrInvalidManifest = errors.New("invalid package manifest")

	// ErrIncompleteManifest is returned when required package fields are missing.
	ErrIncompleteManifest = errors.New("incomplete package manifest")
)

// PackageInfo carries the build-time package description a provider reports
// about itself. The host reads it once and passes it to the provider constructor.
type PackageInfo struct {
	// PackageName is the unique package identifier, used as the provider id.
	PackageName string

	// Name is the human readable package name.
	Name string

	Author      string
	Version     string
	Description string
}

// DefaultPackageInfo describes this build using the linker-provided variables.
func DefaultPackageInfo() PackageInfo {
	return PackageInfo{
		PackageName: PackageName,
		Name:        "IPFS Storage Provider",
		Author:      "ruteri",
		Version:     Version,
		Description: "Uploads a local folder to IPFS and reports the resulting folder hash.",
	}
}

// Validate checks that the fields required to identify a provider are present.
func (p PackageInfo) Validate() error {
	if p.PackageName == "" {
		return fmt.Errorf("%w: missing package name", ErrIncompleteManifest)
	}
	if p.Version == "" {
		return fmt.Errorf("%w: missing version", ErrIncompleteManifest)
	}
	return nil
}

// packageManifest mirrors the subset of package.json this project reads.
type packageManifest struct {
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName"`
	Author      json.RawMessage `json:"author"`
	Version     string          `json:"version"`
	Description string          `json:"description"`
}

// LoadPackageInfo decodes a package.json style manifest.
//
// The author field may be either a plain string or an object with a name
// property. Scoped package names ("@scope/name") keep the scope in PackageName
// and drop it from Name unless displayName is set.
func LoadPackageInfo(r io.Reader) (PackageInfo, error) {
	var manifest packageManifest
	if err := json.NewDecoder(r).Decode(&manifest); err != nil {
		return PackageInfo{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	author, err := parseAuthor(manifest.Author)
	if err != nil {
		return PackageInfo{}, err
	}

	name := manifest.DisplayName
	if name == "" {
		name = manifest.Name
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
	}

	info := PackageInfo{
		PackageName: manifest.Name,
		Name:        name,
		Author:      author,
		Version:     manifest.Version,
		Description: manifest.Description,
	}
	if err := info.Validate(); err != nil {
		return PackageInfo{}, err
	}
	return info, nil
}

func parseAuthor(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var author string
	if err := json.Unmarshal(raw, &author); err == nil {
		return author, nil
	}

	var person struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &person); err != nil {
		return "", fmt.Errorf("%w: author must be a string or an object: %v", ErrInvalidManifest, err)
	}
	return person.Name, nil
}
