package generation

import "sync"

// ProviderHealth is the process-lifetime health state of the primary
// generation provider. The flag is sticky: once the primary fails, every
// later call in the process goes straight to the secondary. Shared by
// handle across all callers; never per-session.
type ProviderHealth struct {
	mu          sync.Mutex
	primaryDown bool
}

func NewProviderHealth() *ProviderHealth { return &ProviderHealth{} }

// PrimaryDown reports whether the primary has ever failed.
func (h *ProviderHealth) PrimaryDown() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.primaryDown
}

// MarkPrimaryDown trips the breaker. There is no reset.
func (h *ProviderHealth) MarkPrimaryDown() {
	h.mu.Lock()
	h.primaryDown = true
	h.mu.Unlock()
}
