package tokencoll

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultRebuildIdle is the debounce applied between a dirty signal
// and the rebuild it triggers.
const DefaultRebuildIdle = 3 * time.Second

// stopTimeout bounds how long Stop waits for the worker to exit.
const stopTimeout = time.Second

// Option configures a Collection.
type Option func(*Collection)

// WithRebuildIdle overrides the rebuild debounce.
func WithRebuildIdle(d time.Duration) Option {
	return func(c *Collection) {
		if d > 0 {
			c.rebuildIdle = d
		}
	}
}

// WithNotifier registers fn to run on the worker after each publish.
// It delivers no data; forward it to the editor thread and pull the
// published list from there.
func WithNotifier(fn func()) Option {
	return func(c *Collection) { c.notify = fn }
}

// WithLogger replaces the collection's logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Collection) { c.log = logger }
}

// Collection owns the published token list and the worker that
// rebuilds it.
type Collection struct {
	mu        sync.Mutex
	providers []Provider

	rebuildIdle time.Duration
	notify      func()
	log         *log.Logger

	dirty     atomic.Bool
	wake      chan struct{}
	stop      chan struct{}
	stopped   chan struct{}
	published atomic.Pointer[[]Token]
}

// NewCollection starts the worker over the given providers.
func NewCollection(providers []Provider, opts ...Option) *Collection {
	c := &Collection{
		providers:   providers,
		rebuildIdle: DefaultRebuildIdle,
		log:         log.Default(),
		wake:        make(chan struct{}, 1),
		stop:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	empty := []Token{}
	c.published.Store(&empty)
	go c.worker()
	return c
}

// Signal marks the index dirty and wakes the worker. Safe from any
// goroutine; redundant signals coalesce.
func (c *Collection) Signal() {
	c.dirty.Store(true)
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// AddProvider registers p and schedules a rebuild. Safe from any
// goroutine.
func (c *Collection) AddProvider(p Provider) {
	if p == nil {
		return
	}
	c.mu.Lock()
	c.providers = append(c.providers, p)
	c.mu.Unlock()
	c.Signal()
}

// RemoveProvider unregisters p and schedules a rebuild. Providers are
// matched by interface identity, so register a pointer type when
// removal is needed; unknown providers are ignored.
func (c *Collection) RemoveProvider(p Provider) {
	c.mu.Lock()
	for i, q := range c.providers {
		if q == p {
			c.providers = append(c.providers[:i], c.providers[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.Signal()
}

// Stop asks the worker to exit and waits up to one second. A stalled
// worker is logged and abandoned.
func (c *Collection) Stop() {
	close(c.stop)
	select {
	case <-c.stopped:
	case <-time.After(stopTimeout):
		c.log.Warn("token index worker stalled, abandoning", "timeout", stopTimeout)
	}
}

// Tokens returns the published list. The slice must be treated as
// read-only.
func (c *Collection) Tokens() []Token {
	return *c.published.Load()
}

// HasEntries reports whether any published token matches the input.
func (c *Collection) HasEntries(input, precedingContext string, line int) bool {
	for _, t := range c.Tokens() {
		if t.Matches(input, precedingContext, line) {
			return true
		}
	}
	return false
}

func (c *Collection) worker() {
	defer close(c.stopped)
	var lastHash uint64
	for {
		select {
		case <-c.stop:
			return
		case <-c.wake:
		}

		// Debounce: restart the idle wait on every fresh signal so a
		// typing burst triggers a single rebuild.
		timer := time.NewTimer(c.rebuildIdle)
	settle:
		for {
			select {
			case <-c.stop:
				timer.Stop()
				return
			case <-c.wake:
				if !timer.Stop() {
					<-timer.C
				}
				timer.Reset(c.rebuildIdle)
			case <-timer.C:
				break settle
			}
		}

		// A wake without a dirty mark carries no new work.
		if !c.dirty.Swap(false) {
			continue
		}
		tokens := c.rebuild()
		h := hashTokens(tokens)
		if h == lastHash {
			continue
		}
		lastHash = h
		c.published.Store(&tokens)
		if c.notify != nil {
			c.notify()
		}
	}
}

func (c *Collection) rebuild() []Token {
	c.mu.Lock()
	providers := make([]Provider, len(c.providers))
	copy(providers, c.providers)
	c.mu.Unlock()

	var tokens []Token
	for _, p := range providers {
		tokens = p.AddTokens(tokens)
	}
	sortTokens(tokens)
	if tokens == nil {
		tokens = []Token{}
	}
	return tokens
}
