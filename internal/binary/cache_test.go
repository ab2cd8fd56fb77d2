package binary

import (
	"sync"
	"testing"
)

func TestPathCacheFirstWriterWins(t *testing.T) {
	cache := NewPathCache()

	if _, ok := cache.Get(); ok {
		t.Fatal("fresh cache should be empty")
	}

	if !cache.TrySet("/first") {
		t.Fatal("first TrySet should win")
	}
	if cache.TrySet("/second") {
		t.Fatal("second TrySet should be discarded")
	}

	got, ok := cache.Get()
	if !ok || got != "/first" {
		t.Errorf("Get = (%q, %v), want (/first, true)", got, ok)
	}
}

func TestPathCacheConcurrentWriters(t *testing.T) {
	cache := NewPathCache()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if cache.TrySet("/racer") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly one winning write, got %d", wins)
	}
	if got, ok := cache.Get(); !ok || got != "/racer" {
		t.Errorf("Get = (%q, %v)", got, ok)
	}
}

func TestNopPathCache(t *testing.T) {
	cache := NopPathCache()

	cache.TrySet("/anything")
	if _, ok := cache.Get(); ok {
		t.Error("nop cache should never return a value")
	}
}
