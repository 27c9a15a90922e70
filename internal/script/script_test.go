package script

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ghostkellz/grim/internal/pluginhost/security"
)

type stubRegistry map[string]bool

func (r stubRegistry) Resolve(callee string) bool { return r[callee] }

func TestCompileRequiresSetup(t *testing.T) {
	_, err := Compile(`fn other() { buffer.insert("x"); }`, stubRegistry{"buffer.insert": true})
	if !errors.Is(err, ErrSetupMissing) {
		t.Fatalf("expected ErrSetupMissing, got %v", err)
	}
}

func TestCompileRejectsUnknownCallee(t *testing.T) {
	_, err := Compile(`fn setup() { bogus.call("x"); }`, stubRegistry{})
	if !errors.Is(err, ErrUnsupportedStatement) {
		t.Fatalf("expected ErrUnsupportedStatement, got %v", err)
	}
}

func TestCompileRejectsBadSyntax(t *testing.T) {
	_, err := Compile(`fn setup( { buffer.insert("x"); }`, stubRegistry{"buffer.insert": true})
	if !errors.Is(err, ErrInvalidSyntax) {
		t.Fatalf("expected ErrInvalidSyntax, got %v", err)
	}
}

func TestCompileParsesCommentsAndNewlineSeparators(t *testing.T) {
	src := "fn setup() {\n  // comment\n  buffer.insert(\"a\")\n  buffer.insert(\"b\");\n}\n"
	prog, err := Compile(src, stubRegistry{"buffer.insert": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, ok := prog.Setup()
	if !ok {
		t.Fatal("expected setup function")
	}
	if len(fn.Body) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(fn.Body))
	}
	if fn.Body[0].Arg != "a" || fn.Body[1].Arg != "b" {
		t.Fatalf("unexpected args: %+v", fn.Body)
	}
}

func TestCompileHandlesEscapes(t *testing.T) {
	prog, err := Compile(`fn setup() { buffer.insert("line\n\ttab\"quote"); }`, stubRegistry{"buffer.insert": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn, _ := prog.Setup()
	if fn.Body[0].Arg != "line\n\ttab\"quote" {
		t.Fatalf("unexpected escape decoding: %q", fn.Body[0].Arg)
	}
}

type recordingDispatcher struct {
	calls []Action
	err   error
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, callee, arg string) error {
	d.calls = append(d.calls, Action{Callee: callee, Arg: arg})
	return d.err
}

func TestHostRunExecutesLinearly(t *testing.T) {
	prog, err := Compile(`fn setup() { a.one("1"); a.two("2"); }`, stubRegistry{"a.one": true, "a.two": true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	d := &recordingDispatcher{}
	cfg := DefaultSandboxConfig()
	h := NewHost(d, cfg)
	if err := h.RunSetup(context.Background(), prog); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(d.calls) != 2 || d.calls[0].Callee != "a.one" || d.calls[1].Callee != "a.two" {
		t.Fatalf("unexpected call order: %+v", d.calls)
	}
	stats := h.Stats()
	if stats.ExecutionCount != 1 {
		t.Fatalf("expected 1 execution, got %d", stats.ExecutionCount)
	}
}

func TestHostRunTimesOut(t *testing.T) {
	prog, err := Compile(`fn setup() { slow.op("x"); }`, stubRegistry{"slow.op": true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	d := &blockingDispatcher{release: make(chan struct{})}
	defer close(d.release)
	cfg := DefaultSandboxConfig()
	cfg.MaxWallTime = 20 * time.Millisecond
	h := NewHost(d, cfg)
	err = h.RunSetup(context.Background(), prog)
	if !errors.Is(err, ErrExecutionTimeout) {
		t.Fatalf("expected ErrExecutionTimeout, got %v", err)
	}
}

type blockingDispatcher struct{ release chan struct{} }

func (d *blockingDispatcher) Dispatch(ctx context.Context, callee, arg string) error {
	<-d.release
	return nil
}

func TestSandboxFileAccessBlockedBeforeAllowed(t *testing.T) {
	sb := newSandbox(SandboxConfig{
		EnableFilesystem:    true,
		AllowedFilePatterns: []string{"/home/user/*"},
		BlockedFilePatterns: []string{"/home/user/.ssh/*"},
	})
	if err := sb.checkFileAccess("/home/user/notes.txt"); err != nil {
		t.Fatalf("expected allowed path to pass, got %v", err)
	}
	if err := sb.checkFileAccess("/home/user/.ssh/id_rsa"); !errors.Is(err, ErrUnauthorizedFileAccess) {
		t.Fatalf("expected blocked path to be denied, got %v", err)
	}
}

func TestSandboxDeniesFilesystemWhenDisabled(t *testing.T) {
	sb := newSandbox(DefaultSandboxConfig())
	if err := sb.checkFileAccess("/anything"); !errors.Is(err, ErrUnauthorizedFileAccess) {
		t.Fatalf("expected unauthorized access, got %v", err)
	}
}

func TestSandboxFileAccessRequiresGrantedCapability(t *testing.T) {
	sb := newSandbox(SandboxConfig{
		EnableFilesystem:    true,
		AllowedFilePatterns: []string{"/home/user/*"},
		PluginName:          "notes",
		Permissions:         &security.PermissionSet{}, // no capabilities granted
	})
	if err := sb.checkFileAccess("/home/user/notes.txt"); !errors.Is(err, ErrUnauthorizedFileAccess) {
		t.Fatalf("expected capability-less sandbox to deny access, got %v", err)
	}
}

func TestSandboxFileAccessAllowedOnceCapabilityGranted(t *testing.T) {
	sb := newSandbox(SandboxConfig{
		EnableFilesystem:    true,
		AllowedFilePatterns: []string{"/home/user/*"},
		PluginName:          "notes",
		Permissions:         &security.PermissionSet{Capabilities: []security.Capability{security.CapabilityFileRead}},
	})
	if err := sb.checkFileAccess("/home/user/notes.txt"); err != nil {
		t.Fatalf("expected granted capability to allow access, got %v", err)
	}
}

func TestSandboxNetworkAccessHonorsHostBlockList(t *testing.T) {
	sb := newSandbox(SandboxConfig{
		EnableNetwork:      true,
		MaxNetworkRequests: 10,
		PluginName:         "fetcher",
		Permissions: &security.PermissionSet{
			Capabilities: []security.Capability{security.CapabilityNetwork},
			BlockedHosts: []string{"internal.example.com"},
		},
	})
	if err := sb.checkNetworkAccess("api.example.com"); err != nil {
		t.Fatalf("expected unblocked host to pass, got %v", err)
	}
	if err := sb.checkNetworkAccess("internal.example.com"); !errors.Is(err, ErrUnauthorizedNetworkAccess) {
		t.Fatalf("expected blocked host to be denied, got %v", err)
	}
}

func TestSandboxNetworkAccessDeniedWithoutCapability(t *testing.T) {
	sb := newSandbox(SandboxConfig{
		EnableNetwork:      true,
		MaxNetworkRequests: 10,
		PluginName:         "fetcher",
		Permissions:        &security.PermissionSet{},
	})
	if err := sb.checkNetworkAccess("api.example.com"); !errors.Is(err, ErrUnauthorizedNetworkAccess) {
		t.Fatalf("expected ungranted network capability to deny access, got %v", err)
	}
}

func TestSandboxInstructionBudgetTripsViolation(t *testing.T) {
	sb := newSandbox(SandboxConfig{
		Limits: security.ResourceLimits{InstructionLimit: 2},
	})
	if err := sb.checkInstructionBudget(); err != nil {
		t.Fatalf("first instruction: unexpected error %v", err)
	}
	if err := sb.checkInstructionBudget(); err != nil {
		t.Fatalf("second instruction: unexpected error %v", err)
	}
	if err := sb.checkInstructionBudget(); !errors.Is(err, ErrSandboxViolation) {
		t.Fatalf("expected third instruction to trip the limit, got %v", err)
	}
}

func TestHostRunStopsMidProgramOnInstructionLimit(t *testing.T) {
	prog, err := Compile(`fn setup() { a.one("1"); a.two("2"); a.three("3"); }`,
		stubRegistry{"a.one": true, "a.two": true, "a.three": true})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	d := &recordingDispatcher{}
	cfg := DefaultSandboxConfig()
	cfg.Limits = security.ResourceLimits{InstructionLimit: 2}
	h := NewHost(d, cfg)
	err = h.RunSetup(context.Background(), prog)
	if !errors.Is(err, ErrSandboxViolation) {
		t.Fatalf("expected ErrSandboxViolation, got %v", err)
	}
	if len(d.calls) != 2 {
		t.Fatalf("expected exactly 2 actions to run before the limit tripped, got %d", len(d.calls))
	}
}
