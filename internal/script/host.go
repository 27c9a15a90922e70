package script

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Dispatcher performs the side effect named by a resolved Action. It is
// implemented by internal/bridge for real capability calls and by tests
// with a stub table. Dispatch is expected to classify its own file and
// network operations by calling CheckFile/CheckNetwork on the Host before
// touching the resource, so the sandbox accounting stays accurate even
// though the dispatcher — not the interpreter — performs the I/O.
type Dispatcher interface {
	Dispatch(ctx context.Context, callee, arg string) error
}

// Host runs compiled Programs against a Dispatcher under a SandboxConfig.
// One Host corresponds to one loaded plugin; its statistics accumulate
// across every Run.
type Host struct {
	mu       sync.Mutex
	config   SandboxConfig
	dispatch Dispatcher
	stats    Stats
	active   *sandbox
}

// NewHost creates a script execution host bound to a dispatcher and a
// resource policy.
func NewHost(dispatch Dispatcher, config SandboxConfig) *Host {
	return &Host{dispatch: dispatch, config: config}
}

// Stats returns a snapshot of the host's cumulative resource usage.
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Run executes fn's body to completion or until the sandbox's wall-time
// budget expires. Because the grammar forbids loops, branches, and
// recursion, the only way a Run fails to terminate on its own is an
// individual Dispatch call blocking indefinitely; ctx governs that case.
func (h *Host) Run(ctx context.Context, fn *Function) error {
	runCtx, cancel := context.WithTimeout(ctx, h.config.MaxWallTime)
	defer cancel()

	sb := newSandbox(h.config)
	start := time.Now()

	h.mu.Lock()
	h.active = sb
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		h.active = nil
		h.mu.Unlock()
	}()

	done := make(chan error, 1)
	go func() {
		for _, action := range fn.Body {
			if err := h.runAction(runCtx, sb, action); err != nil {
				done <- err
				return
			}
		}
		done <- nil
	}()

	var runErr error
	select {
	case runErr = <-done:
	case <-runCtx.Done():
		runErr = fmt.Errorf("%w: %s", ErrExecutionTimeout, fn.Name)
	}

	elapsed := time.Since(start)
	h.mu.Lock()
	h.stats.ExecutionCount++
	h.stats.TotalWallTime += elapsed
	h.stats.LastStartTimestamp = start
	h.stats.FileOperations += sb.fileOps
	h.stats.NetworkRequests += sb.netOps
	h.stats.Violations += sb.violation
	h.mu.Unlock()

	return runErr
}

func (h *Host) runAction(ctx context.Context, sb *sandbox, action Action) error {
	if err := sb.checkInstructionBudget(); err != nil {
		return fmt.Errorf("script: %s at %d:%d: %w", action.Callee, action.Pos.Line, action.Pos.Column, err)
	}
	if err := h.dispatch.Dispatch(ctx, action.Callee, action.Arg); err != nil {
		return fmt.Errorf("script: %s(%q) at %d:%d: %w",
			action.Callee, action.Arg, action.Pos.Line, action.Pos.Column, err)
	}
	return nil
}

// CheckFile reports whether path is permitted under the sandbox active for
// the in-flight Run, recording the access against its file-operation
// budget. It is a no-op returning nil when no Run is in flight, which lets
// a Dispatcher share one code path for sandboxed and ad hoc calls.
func (h *Host) CheckFile(path string) error {
	h.mu.Lock()
	sb := h.active
	h.mu.Unlock()
	if sb == nil {
		return nil
	}
	if err := sb.checkFileAccess(path); err != nil {
		return err
	}
	return sb.recordFileOp()
}

// CheckNetwork reports whether a request to host is permitted under the
// sandbox active for the in-flight Run, recording the access against its
// request budget and, when the sandbox carries plugin permissions,
// against its capability and host allow/block lists. It is a no-op
// returning nil when no Run is in flight.
func (h *Host) CheckNetwork(host string) error {
	h.mu.Lock()
	sb := h.active
	h.mu.Unlock()
	if sb == nil {
		return nil
	}
	return sb.checkNetworkAccess(host)
}

// RunSetup is the host's single public entry point: it looks up and runs
// the program's mandatory setup() declaration.
func (h *Host) RunSetup(ctx context.Context, prog *Program) error {
	fn, ok := prog.Setup()
	if !ok {
		return ErrSetupMissing
	}
	return h.Run(ctx, fn)
}
