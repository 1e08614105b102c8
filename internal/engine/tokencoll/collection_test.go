package tokencoll

import (
	"testing"
	"time"
)

func staticProvider(priority int, names ...string) Provider {
	return ProviderFunc(func(dst []Token) []Token {
		for _, n := range names {
			dst = append(dst, Token{Content: n, Priority: priority})
		}
		return dst
	})
}

// waitForTokens polls until the published list is non-empty or the
// deadline passes.
func waitForTokens(t *testing.T, c *Collection) []Token {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if tokens := c.Tokens(); len(tokens) > 0 {
			return tokens
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no tokens published before the deadline")
	return nil
}

func TestCollectionPublishesAfterSignal(t *testing.T) {
	c := NewCollection(
		[]Provider{staticProvider(0, "alpha", "alpine", "beta")},
		WithRebuildIdle(10*time.Millisecond),
	)
	defer c.Stop()

	if len(c.Tokens()) != 0 {
		t.Fatal("fresh collection must publish an empty list")
	}

	c.Signal()
	tokens := waitForTokens(t, c)
	if len(tokens) != 3 {
		t.Fatalf("tokens = %d, want 3", len(tokens))
	}

	if !c.HasEntries("alp", "", 0) {
		t.Error("HasEntries(alp) = false, want true")
	}
	if c.HasEntries("gamma", "", 0) {
		t.Error("HasEntries(gamma) = true, want false")
	}
	if c.HasEntries("", "", 0) {
		t.Error("empty input must never match")
	}
}

func TestCollectionSortOrder(t *testing.T) {
	c := NewCollection(
		[]Provider{
			staticProvider(0, "zebra", "Apple"),
			staticProvider(5, "omega"),
		},
		WithRebuildIdle(10*time.Millisecond),
	)
	defer c.Stop()

	c.Signal()
	tokens := waitForTokens(t, c)
	want := []string{"omega", "Apple", "zebra"}
	if len(tokens) != len(want) {
		t.Fatalf("tokens = %d, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].Content != w {
			t.Errorf("token %d = %q, want %q", i, tokens[i].Content, w)
		}
	}
}

func TestCollectionNotifiesOnlyOnChange(t *testing.T) {
	notifies := make(chan struct{}, 16)
	c := NewCollection(
		[]Provider{staticProvider(0, "alpha")},
		WithRebuildIdle(10*time.Millisecond),
		WithNotifier(func() { notifies <- struct{}{} }),
	)
	defer c.Stop()

	c.Signal()
	select {
	case <-notifies:
	case <-time.After(5 * time.Second):
		t.Fatal("first rebuild must notify")
	}

	// A second rebuild over identical content publishes nothing.
	c.Signal()
	select {
	case <-notifies:
		t.Error("unchanged rebuild must not notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCollectionCoalescesSignalBursts(t *testing.T) {
	rebuilds := make(chan struct{}, 16)
	p := ProviderFunc(func(dst []Token) []Token {
		rebuilds <- struct{}{}
		return append(dst, Token{Content: "only"})
	})
	c := NewCollection([]Provider{p}, WithRebuildIdle(100*time.Millisecond))
	defer c.Stop()

	for i := 0; i < 10; i++ {
		c.Signal()
		time.Sleep(2 * time.Millisecond)
	}

	select {
	case <-rebuilds:
	case <-time.After(5 * time.Second):
		t.Fatal("burst must trigger a rebuild")
	}
	select {
	case <-rebuilds:
		t.Error("burst must coalesce into one rebuild")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestAddProviderSchedulesRebuild(t *testing.T) {
	c := NewCollection(nil, WithRebuildIdle(10*time.Millisecond))
	defer c.Stop()

	p := NewLineScanProvider(0)
	p.SetLines([]string{"alpha beta"})
	c.AddProvider(p)

	tokens := waitForTokens(t, c)
	if len(tokens) != 2 {
		t.Fatalf("tokens = %d, want 2", len(tokens))
	}
}

func TestRemovingProviderClearsListAndNotifiesOnce(t *testing.T) {
	notifies := make(chan struct{}, 16)
	c := NewCollection(nil,
		WithRebuildIdle(10*time.Millisecond),
		WithNotifier(func() { notifies <- struct{}{} }),
	)
	defer c.Stop()

	p := NewLineScanProvider(0)
	p.SetLines([]string{"alpha beta gamma"})
	c.AddProvider(p)
	waitForTokens(t, c)
	select {
	case <-notifies:
	case <-time.After(5 * time.Second):
		t.Fatal("first publish must notify")
	}

	c.RemoveProvider(p)
	deadline := time.Now().Add(5 * time.Second)
	for len(c.Tokens()) > 0 {
		if time.Now().After(deadline) {
			t.Fatal("list not cleared after provider removal")
		}
		time.Sleep(5 * time.Millisecond)
	}
	select {
	case <-notifies:
	case <-time.After(5 * time.Second):
		t.Fatal("clearing publish must notify")
	}

	// Re-signaling over the same empty set publishes nothing further.
	c.Signal()
	select {
	case <-notifies:
		t.Error("unchanged empty rebuild must not notify")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestRemoveUnknownProviderIsNoOp(t *testing.T) {
	p := NewLineScanProvider(0)
	p.SetLines([]string{"alpha"})
	c := NewCollection([]Provider{p}, WithRebuildIdle(10*time.Millisecond))
	defer c.Stop()

	c.RemoveProvider(NewLineScanProvider(0))
	c.Signal()
	if tokens := waitForTokens(t, c); len(tokens) != 1 {
		t.Fatalf("tokens = %d, want 1", len(tokens))
	}
}

func TestStopTerminatesWorker(t *testing.T) {
	c := NewCollection(nil, WithRebuildIdle(10*time.Millisecond))
	c.Stop()
	select {
	case <-c.stopped:
	default:
		t.Error("worker must have exited after Stop")
	}
}

func TestLineScanProvider(t *testing.T) {
	p := NewLineScanProvider(2)
	p.SetLines([]string{"count := offset + count", "x, y\tremainder"})

	tokens := p.AddTokens(nil)
	got := map[string]bool{}
	for _, tok := range tokens {
		if tok.Priority != 2 {
			t.Errorf("token %q priority = %d, want 2", tok.Content, tok.Priority)
		}
		if got[tok.Content] {
			t.Errorf("token %q emitted twice", tok.Content)
		}
		got[tok.Content] = true
	}
	for _, want := range []string{"count", "offset", "remainder"} {
		if !got[want] {
			t.Errorf("missing token %q", want)
		}
	}
	// Short identifiers fall under the length floor.
	if got["x"] || got["y"] {
		t.Error("short identifiers must be filtered out")
	}
}

func TestHashTokensIsOrderFree(t *testing.T) {
	a := []Token{{Content: "one"}, {Content: "two"}}
	b := []Token{{Content: "two"}, {Content: "one"}}
	if hashTokens(a) != hashTokens(b) {
		t.Error("hash must not depend on order")
	}
	if hashTokens(a) == hashTokens([]Token{{Content: "one"}}) {
		t.Error("different lists must hash differently")
	}
}
