package pluginhost

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/gjson"
)

// Permissions describes the resources a plugin may consume and the
// capability classes it may reach, mirroring the sandbox policy the
// Script Host enforces. The Native Module Loader does not apply it.
type Permissions struct {
	Filesystem      bool  `json:"filesystem"`
	Network         bool  `json:"network"`
	SystemCalls     bool  `json:"system_calls"`
	Process         bool  `json:"process"`
	MemoryBytes     int64 `json:"memory_bytes"`
	WallTimeMS      int64 `json:"wall_time_ms"`
	FileOperations  int   `json:"file_operations"`
	NetworkRequests int   `json:"network_requests"`
}

// Manifest describes a plugin's identity, dependencies, and permissions.
// It is the on-disk format read from a plugin root's manifest file.
type Manifest struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Version      string      `json:"version"`
	Author       string      `json:"author"`
	Description  string      `json:"description"`
	EntryPoint   string      `json:"entry_point"`
	Dependencies []string    `json:"dependencies"`
	Permissions  Permissions `json:"permissions"`

	// path is the plugin's root directory; not part of the wire format.
	path string
}

// Manifest validation errors.
var (
	ErrMissingID           = errors.New("manifest: id is required")
	ErrInvalidID           = errors.New("manifest: id must be lowercase-dashed")
	ErrMissingManifestName = errors.New("manifest: name is required")
	ErrMissingVersion      = errors.New("manifest: version is required")
	ErrInvalidVersion      = errors.New("manifest: version must be valid semver")
	ErrMissingEntryPoint   = errors.New("manifest: entry_point is required")
)

// idPattern enforces the "unique, lowercase-dashed" identifier shape.
var idPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// semverPattern validates a simplified semver string.
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?(\+[a-zA-Z0-9.-]+)?$`)

// ManifestFileName is the conventional manifest filename at a plugin root.
const ManifestFileName = "plugin.json"

// LoadManifest reads and validates a manifest from a file path.
//
// Fields are read with gjson rather than encoding/json so a manifest
// carrying unrecognized keys (future permission flags, editor-specific
// metadata) never fails to parse; unknown keys are simply ignored.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pluginhost: read manifest: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("pluginhost: parse manifest: invalid JSON")
	}
	root := gjson.ParseBytes(data)

	m := Manifest{
		ID:          root.Get("id").String(),
		Name:        root.Get("name").String(),
		Version:     root.Get("version").String(),
		Author:      root.Get("author").String(),
		Description: root.Get("description").String(),
		EntryPoint:  root.Get("entry_point").String(),
		Permissions: Permissions{
			Filesystem:      root.Get("permissions.filesystem").Bool(),
			Network:         root.Get("permissions.network").Bool(),
			SystemCalls:     root.Get("permissions.system_calls").Bool(),
			Process:         root.Get("permissions.process").Bool(),
			MemoryBytes:     root.Get("permissions.memory_bytes").Int(),
			WallTimeMS:      root.Get("permissions.wall_time_ms").Int(),
			FileOperations:  int(root.Get("permissions.file_operations").Int()),
			NetworkRequests: int(root.Get("permissions.network_requests").Int()),
		},
	}
	for _, dep := range root.Get("dependencies").Array() {
		m.Dependencies = append(m.Dependencies, dep.String())
	}
	m.path = filepath.Dir(path)

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// LoadManifestFromDir loads the manifest file from a plugin root directory.
func LoadManifestFromDir(dir string) (*Manifest, error) {
	return LoadManifest(filepath.Join(dir, ManifestFileName))
}

// Validate checks that all required fields are present and well-formed.
func (m *Manifest) Validate() error {
	if m.ID == "" {
		return ErrMissingID
	}
	if !idPattern.MatchString(m.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidID, m.ID)
	}
	if m.Name == "" {
		return ErrMissingManifestName
	}
	if m.Version == "" {
		return ErrMissingVersion
	}
	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, m.Version)
	}
	if m.EntryPoint == "" {
		return ErrMissingEntryPoint
	}
	return nil
}

// Path returns the plugin's root directory.
func (m *Manifest) Path() string {
	return m.path
}

// EntryPointPath returns the full path to the plugin's entry point file.
func (m *Manifest) EntryPointPath() string {
	return filepath.Join(m.path, m.EntryPoint)
}

// Clone returns a deep copy of the manifest.
func (m *Manifest) Clone() *Manifest {
	clone := *m
	if m.Dependencies != nil {
		clone.Dependencies = make([]string, len(m.Dependencies))
		copy(clone.Dependencies, m.Dependencies)
	}
	return &clone
}

// String returns a human-readable identity for logs and error messages.
func (m *Manifest) String() string {
	return fmt.Sprintf("%s@%s", m.ID, m.Version)
}

// MarshalJSON implements json.Marshaler via a type alias so the unexported
// path field is excluded without risking infinite recursion if this method
// is ever called on a type that embeds Manifest.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	type alias Manifest
	return json.Marshal((*alias)(m))
}
