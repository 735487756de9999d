package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestMemory_SetGet(t *testing.T) {
	m := NewMemory()
	m.Set("pokemon:pikachu", 42, time.Hour)

	v, ok := m.Get("pokemon:pikachu")
	if !ok {
		t.Fatal("expected hit for stored key")
	}
	if v.(int) != 42 {
		t.Errorf("Get = %v, want 42", v)
	}
}

func TestMemory_Miss(t *testing.T) {
	m := NewMemory()
	if _, ok := m.Get("pokemon:missingmon"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	m.Set("stat:attack", "cached", time.Millisecond)

	time.Sleep(5 * time.Millisecond)

	if _, ok := m.Get("stat:attack"); ok {
		t.Error("expected expired entry to miss")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0 after lazy eviction", m.Len())
	}
}

func TestMemory_Overwrite(t *testing.T) {
	m := NewMemory()
	m.Set("k", 1, time.Hour)
	m.Set("k", 2, time.Hour)

	v, ok := m.Get("k")
	if !ok || v.(int) != 2 {
		t.Errorf("Get = %v, %v, want 2, true", v, ok)
	}
}

func TestMemory_Purge(t *testing.T) {
	m := NewMemory()
	m.Set("a", 1, time.Hour)
	m.Set("b", 2, time.Hour)
	m.Purge()

	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0 after purge", m.Len())
	}
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	m := NewMemory()
	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			for range 100 {
				m.Set(key, i, time.Hour)
				m.Get(key)
			}
		}()
	}
	wg.Wait()
}
