package security

import (
	"sync"
	"sync/atomic"
	"time"
)

// ResourceLimits caps what a single plugin invocation may consume. A
// zero value for any field means that dimension is unlimited — callers
// that only care about, say, instruction counting can leave every other
// field at its zero value without accidentally capping memory or rate.
type ResourceLimits struct {
	MemoryLimit int64 // bytes; advisory, not strictly enforced

	ExecutionTimeout time.Duration

	// InstructionLimit caps the number of script-host actions a single
	// Run executes before it is aborted with ErrSandboxViolation.
	InstructionLimit int64

	FileOpsPerSecond    int
	NetworkReqPerSecond int

	MaxGoroutines int
	MaxOutputSize int64 // bytes
}

// DefaultResourceLimits is the baseline applied when a plugin manifest
// doesn't request anything stricter or looser.
func DefaultResourceLimits() ResourceLimits {
	return ResourceLimits{
		MemoryLimit:         10 << 20,
		ExecutionTimeout:    5 * time.Second,
		InstructionLimit:    10_000_000,
		FileOpsPerSecond:    100,
		NetworkReqPerSecond: 10,
		MaxGoroutines:       10,
		MaxOutputSize:       1 << 20,
	}
}

// StrictResourceLimits is appropriate for a plugin pulled from an
// unvetted source.
func StrictResourceLimits() ResourceLimits {
	return ResourceLimits{
		MemoryLimit:         5 << 20,
		ExecutionTimeout:    2 * time.Second,
		InstructionLimit:    1_000_000,
		FileOpsPerSecond:    10,
		NetworkReqPerSecond: 1,
		MaxGoroutines:       2,
		MaxOutputSize:       256 << 10,
	}
}

// RelaxedResourceLimits suits a plugin the workspace owner has already
// vetted and wants to run with headroom.
func RelaxedResourceLimits() ResourceLimits {
	return ResourceLimits{
		MemoryLimit:         50 << 20,
		ExecutionTimeout:    30 * time.Second,
		InstructionLimit:    100_000_000,
		FileOpsPerSecond:    1000,
		NetworkReqPerSecond: 100,
		MaxGoroutines:       50,
		MaxOutputSize:       10 << 20,
	}
}

// ResourceMonitor is a single plugin invocation's live usage tracker. It
// is built from a ResourceLimits once per Host (see NewResourceMonitor)
// and updated on every counted operation; once any dimension trips, it
// latches into an exceeded state with a reason string for diagnostics.
type ResourceMonitor struct {
	mu sync.RWMutex

	limits ResourceLimits

	instructionCount int64
	memoryUsage      int64
	goroutineCount   int32
	outputSize       int64

	fileOpsLimiter    *RateLimiter
	networkReqLimiter *RateLimiter

	exceeded bool
	reason   string
}

// NewResourceMonitor builds a monitor enforcing limits. A zero
// ResourceLimits produces a monitor that never reports exceeded.
func NewResourceMonitor(limits ResourceLimits) *ResourceMonitor {
	return &ResourceMonitor{
		limits:            limits,
		fileOpsLimiter:    NewRateLimiter(limits.FileOpsPerSecond),
		networkReqLimiter: NewRateLimiter(limits.NetworkReqPerSecond),
	}
}

// IncrementInstructions adds count to the running instruction total and
// reports whether InstructionLimit was exceeded as a result.
func (rm *ResourceMonitor) IncrementInstructions(count int64) bool {
	total := atomic.AddInt64(&rm.instructionCount, count)
	if rm.limits.InstructionLimit > 0 && total > rm.limits.InstructionLimit {
		rm.setExceeded("instruction limit exceeded")
		return true
	}
	return false
}

func (rm *ResourceMonitor) InstructionCount() int64 {
	return atomic.LoadInt64(&rm.instructionCount)
}

func (rm *ResourceMonitor) ResetInstructionCount() {
	atomic.StoreInt64(&rm.instructionCount, 0)
}

// UpdateMemoryUsage records the plugin's current memory footprint and
// reports whether MemoryLimit was exceeded.
func (rm *ResourceMonitor) UpdateMemoryUsage(bytes int64) bool {
	atomic.StoreInt64(&rm.memoryUsage, bytes)
	if rm.limits.MemoryLimit > 0 && bytes > rm.limits.MemoryLimit {
		rm.setExceeded("memory limit exceeded")
		return true
	}
	return false
}

func (rm *ResourceMonitor) MemoryUsage() int64 {
	return atomic.LoadInt64(&rm.memoryUsage)
}

// IncrementGoroutines records a goroutine the plugin spawned and
// reports whether MaxGoroutines was exceeded.
func (rm *ResourceMonitor) IncrementGoroutines() bool {
	count := atomic.AddInt32(&rm.goroutineCount, 1)
	if rm.limits.MaxGoroutines > 0 && int(count) > rm.limits.MaxGoroutines {
		rm.setExceeded("goroutine limit exceeded")
		return true
	}
	return false
}

func (rm *ResourceMonitor) DecrementGoroutines() {
	atomic.AddInt32(&rm.goroutineCount, -1)
}

func (rm *ResourceMonitor) GoroutineCount() int {
	return int(atomic.LoadInt32(&rm.goroutineCount))
}

// AddOutput accounts for bytes written to the plugin's output buffer
// and reports whether MaxOutputSize was exceeded.
func (rm *ResourceMonitor) AddOutput(bytes int64) bool {
	total := atomic.AddInt64(&rm.outputSize, bytes)
	if rm.limits.MaxOutputSize > 0 && total > rm.limits.MaxOutputSize {
		rm.setExceeded("output size limit exceeded")
		return true
	}
	return false
}

func (rm *ResourceMonitor) OutputSize() int64 {
	return atomic.LoadInt64(&rm.outputSize)
}

func (rm *ResourceMonitor) ResetOutputSize() {
	atomic.StoreInt64(&rm.outputSize, 0)
}

// TryFileOp consumes one token from the file-operation rate limiter,
// reporting false (and latching exceeded) if none remain.
func (rm *ResourceMonitor) TryFileOp() bool {
	if !rm.fileOpsLimiter.Allow() {
		rm.setExceeded("file operation rate limit exceeded")
		return false
	}
	return true
}

// TryNetworkRequest is TryFileOp's network counterpart.
func (rm *ResourceMonitor) TryNetworkRequest() bool {
	if !rm.networkReqLimiter.Allow() {
		rm.setExceeded("network request rate limit exceeded")
		return false
	}
	return true
}

func (rm *ResourceMonitor) ExecutionTimeout() time.Duration {
	return rm.limits.ExecutionTimeout
}

func (rm *ResourceMonitor) Limits() ResourceLimits {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.limits
}

// SetLimits replaces the active limits and rebuilds both rate limiters
// against the new rates.
func (rm *ResourceMonitor) SetLimits(limits ResourceLimits) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.limits = limits
	rm.fileOpsLimiter = NewRateLimiter(limits.FileOpsPerSecond)
	rm.networkReqLimiter = NewRateLimiter(limits.NetworkReqPerSecond)
}

func (rm *ResourceMonitor) IsExceeded() bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.exceeded
}

func (rm *ResourceMonitor) ExceededReason() string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.reason
}

func (rm *ResourceMonitor) setExceeded(reason string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.exceeded = true
	rm.reason = reason
}

// Reset clears every counter and the exceeded latch, as if the monitor
// had just been constructed with the same limits.
func (rm *ResourceMonitor) Reset() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	atomic.StoreInt64(&rm.instructionCount, 0)
	atomic.StoreInt64(&rm.memoryUsage, 0)
	atomic.StoreInt32(&rm.goroutineCount, 0)
	atomic.StoreInt64(&rm.outputSize, 0)
	rm.exceeded = false
	rm.reason = ""
}

// RateLimiter is a token-bucket limiter: ratePerSecond tokens refill
// continuously up to a burst of ratePerSecond, and Allow consumes one.
type RateLimiter struct {
	mu sync.Mutex

	rate       int
	tokens     int
	maxTokens  int
	lastRefill time.Time
}

// NewRateLimiter builds a limiter for ratePerSecond operations per
// second. ratePerSecond <= 0 produces a limiter whose Allow always
// returns true.
func NewRateLimiter(ratePerSecond int) *RateLimiter {
	if ratePerSecond <= 0 {
		return &RateLimiter{rate: 0, tokens: 1, maxTokens: 1}
	}
	return &RateLimiter{
		rate:       ratePerSecond,
		tokens:     ratePerSecond,
		maxTokens:  ratePerSecond,
		lastRefill: time.Now(),
	}
}

// Allow refills tokens for the elapsed time since the last call, then
// consumes one token if available.
func (rl *RateLimiter) Allow() bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.rate == 0 {
		return true
	}

	now := time.Now()
	if refill := int(now.Sub(rl.lastRefill).Seconds() * float64(rl.rate)); refill > 0 {
		rl.tokens += refill
		if rl.tokens > rl.maxTokens {
			rl.tokens = rl.maxTokens
		}
		rl.lastRefill = now
	}

	if rl.tokens <= 0 {
		return false
	}
	rl.tokens--
	return true
}

// Reset refills the bucket to full capacity immediately.
func (rl *RateLimiter) Reset() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.tokens = rl.maxTokens
	rl.lastRefill = time.Now()
}

// ResourceUsage is a point-in-time snapshot of a ResourceMonitor,
// suitable for surfacing in a plugin inspector or status line.
type ResourceUsage struct {
	InstructionCount int64
	MemoryUsage      int64
	GoroutineCount   int
	OutputSize       int64
	Exceeded         bool
	ExceededReason   string
}

func (rm *ResourceMonitor) GetUsage() ResourceUsage {
	rm.mu.RLock()
	exceeded, reason := rm.exceeded, rm.reason
	rm.mu.RUnlock()

	return ResourceUsage{
		InstructionCount: rm.InstructionCount(),
		MemoryUsage:      rm.MemoryUsage(),
		GoroutineCount:   rm.GoroutineCount(),
		OutputSize:       rm.OutputSize(),
		Exceeded:         exceeded,
		ExceededReason:   reason,
	}
}
