package pluginhost

import "errors"

// Plugin system errors. These map onto the editor-wide error taxonomy:
// NotFound, InvalidInput, DependencyError, and Fatal respectively.
var (
	// ErrPluginNotFound is returned when a plugin id cannot be located.
	ErrPluginNotFound = errors.New("pluginhost: plugin not found")

	// ErrNoEntryPoint is returned when a plugin's entry point file is missing.
	ErrNoEntryPoint = errors.New("pluginhost: entry point not found")

	// ErrNilManifest is returned when a nil manifest is supplied.
	ErrNilManifest = errors.New("pluginhost: manifest is nil")

	// ErrAlreadyLoaded is returned when Load is called twice for one id.
	ErrAlreadyLoaded = errors.New("pluginhost: plugin already loaded")

	// ErrNotReady is returned when an operation requires a ready instance.
	ErrNotReady = errors.New("pluginhost: plugin not ready")

	// ErrUnsatisfiedDependency is returned when a declared dependency id
	// was not discovered. Only the dependent plugin fails; unrelated
	// plugins still load.
	ErrUnsatisfiedDependency = errors.New("pluginhost: unsatisfied dependency")

	// ErrDependencyCycle is returned when the dependency graph contains a
	// cycle. The *DependencyCycleError wrapping it names every plugin in
	// one representative cycle in its Members field.
	ErrDependencyCycle = errors.New("pluginhost: dependency cycle detected")

	// ErrUnknownKind is returned when a manifest names an entry point the
	// manager cannot classify as script or native.
	ErrUnknownKind = errors.New("pluginhost: unknown plugin kind")

	// ErrAlreadyInitialized reports a second initialization of the plugin
	// system; no function in this package returns it.
	ErrAlreadyInitialized = errors.New("pluginhost: already initialized")

	// ErrNotInitialized reports use of the plugin system before it is
	// initialized; no function in this package returns it.
	ErrNotInitialized = errors.New("pluginhost: not initialized")
)

// DependencyCycleError carries the members of one representative cycle
// alongside ErrDependencyCycle.
type DependencyCycleError struct {
	Members []string
}

func (e *DependencyCycleError) Error() string {
	s := "pluginhost: dependency cycle:"
	for i, m := range e.Members {
		if i > 0 {
			s += " ->"
		}
		s += " " + m
	}
	return s
}

func (e *DependencyCycleError) Unwrap() error {
	return ErrDependencyCycle
}
