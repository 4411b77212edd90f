package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("Open() should succeed, got: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_GetMissingURL(t *testing.T) {
	s := openTestStore(t)

	_, ok, err := s.Get("https://example.com/unseen")
	if err != nil {
		t.Fatalf("Get() should succeed, got: %v", err)
	}
	if ok {
		t.Error("a URL that was never stored should miss")
	}
}

func TestStore_PutThenGet(t *testing.T) {
	s := openTestStore(t)

	url := "https://example.com/record"
	if err := s.Put(url, "first"); err != nil {
		t.Fatalf("Put() should succeed, got: %v", err)
	}
	if err := s.Put(url, "second"); err != nil {
		t.Fatalf("a second Put of the same URL should replace, got: %v", err)
	}

	body, ok, err := s.Get(url)
	if err != nil {
		t.Fatalf("Get() should succeed, got: %v", err)
	}
	if !ok || body != "second" {
		t.Errorf("Get() = (%q, %v), want the latest body", body, ok)
	}
}

// countingClient counts fetches so tests can observe cache hits.
type countingClient struct {
	calls int
	text  string
	err   error
}

func (c *countingClient) GetText(_ context.Context, url string) (string, error) {
	c.calls++
	return c.text, c.err
}

func (c *countingClient) GetJSON(_ context.Context, url string, into any) error {
	c.calls++
	return c.err
}

func TestClient_GetTextCachesResponses(t *testing.T) {
	inner := &countingClient{text: "@manual{m1,\n    title = {T},\n}"}
	c := NewClient(inner, openTestStore(t))

	for i := 0; i < 3; i++ {
		body, err := c.GetText(context.Background(), "https://example.com/record")
		if err != nil {
			t.Fatalf("GetText() should succeed, got: %v", err)
		}
		if body != inner.text {
			t.Errorf("GetText() = %q, want the fetched body", body)
		}
	}

	if inner.calls != 1 {
		t.Errorf("the network should be hit once, got %d calls", inner.calls)
	}
}

func TestClient_GetTextDoesNotCacheFailures(t *testing.T) {
	inner := &countingClient{err: errors.New("boom")}
	c := NewClient(inner, openTestStore(t))

	if _, err := c.GetText(context.Background(), "https://example.com/bad"); err == nil {
		t.Fatal("GetText() should propagate the fetch error")
	}
	if _, err := c.GetText(context.Background(), "https://example.com/bad"); err == nil {
		t.Fatal("GetText() should propagate the fetch error")
	}

	if inner.calls != 2 {
		t.Errorf("failed fetches should not be cached, got %d calls", inner.calls)
	}
}

func TestClient_GetJSONPassesThrough(t *testing.T) {
	inner := &countingClient{}
	c := NewClient(inner, openTestStore(t))

	for i := 0; i < 2; i++ {
		if err := c.GetJSON(context.Background(), "https://example.com/search", &struct{}{}); err != nil {
			t.Fatalf("GetJSON() should succeed, got: %v", err)
		}
	}

	if inner.calls != 2 {
		t.Errorf("JSON lookups are not cached, got %d calls", inner.calls)
	}
}
