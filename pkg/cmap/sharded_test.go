package cmap

import (
	"fmt"
	"sync"
	"testing"
)

func TestMap_SetGet(t *testing.T) {
	m := New[string]()

	m.Set("a", "1")
	m.Set("b", "2")

	val, ok := m.Get("a")
	if !ok {
		t.Fatal("Get(a) ok = false, want true")
	}
	if val != "1" {
		t.Fatalf("Get(a) = %q, want %q", val, "1")
	}

	if _, ok := m.Get("missing"); ok {
		t.Fatal("Get(missing) ok = true, want false")
	}
}

func TestMap_Overwrite(t *testing.T) {
	m := New[int]()

	m.Set("k", 1)
	m.Set("k", 2)

	val, _ := m.Get("k")
	if val != 2 {
		t.Fatalf("Get(k) = %d, want 2", val)
	}
	if m.Count() != 1 {
		t.Fatalf("Count = %d, want 1", m.Count())
	}
}

func TestMap_Delete(t *testing.T) {
	m := New[string]()

	m.Set("k", "v")
	if !m.Delete("k") {
		t.Fatal("Delete(k) = false, want true")
	}
	if m.Delete("k") {
		t.Fatal("Delete(k) second call = true, want false")
	}
	if m.Has("k") {
		t.Fatal("Has(k) after delete = true, want false")
	}
}

func TestMap_DeleteIf(t *testing.T) {
	m := New[int]()
	m.Set("k", 1)

	// Predicate rejects: key stays.
	if m.DeleteIf("k", func(v int) bool { return v == 2 }) {
		t.Fatal("DeleteIf with false predicate removed the key")
	}
	if !m.Has("k") {
		t.Fatal("key removed despite false predicate")
	}

	// Predicate holds: key removed.
	if !m.DeleteIf("k", func(v int) bool { return v == 1 }) {
		t.Fatal("DeleteIf with true predicate = false, want true")
	}
	if m.Has("k") {
		t.Fatal("Has(k) after DeleteIf = true, want false")
	}

	// Missing key.
	if m.DeleteIf("missing", func(int) bool { return true }) {
		t.Fatal("DeleteIf(missing) = true, want false")
	}
}

func TestMap_CountAndClear(t *testing.T) {
	m := New[int]()

	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}
	if m.Count() != 100 {
		t.Fatalf("Count = %d, want 100", m.Count())
	}

	m.Clear()
	if m.Count() != 0 {
		t.Fatalf("Count after Clear = %d, want 0", m.Count())
	}
}

func TestMap_Range(t *testing.T) {
	m := New[int]()
	for i := 0; i < 10; i++ {
		m.Set(fmt.Sprintf("key-%d", i), i)
	}

	seen := 0
	m.Range(func(key string, value int) bool {
		seen++
		return true
	})
	if seen != 10 {
		t.Fatalf("Range visited %d items, want 10", seen)
	}

	// Early stop.
	seen = 0
	m.Range(func(key string, value int) bool {
		seen++
		return false
	})
	if seen != 1 {
		t.Fatalf("Range with early stop visited %d items, want 1", seen)
	}

	if len(m.Keys()) != 10 {
		t.Fatalf("len(Keys) = %d, want 10", len(m.Keys()))
	}
}

func TestNewWithShards_InvalidCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  int
	}{
		{"zero", 0, DefaultShardCount},
		{"negative", -4, DefaultShardCount},
		{"not power of two", 12, DefaultShardCount},
		{"power of two", 32, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewWithShards[int](tt.count)
			if m.ShardCount() != tt.want {
				t.Errorf("ShardCount = %d, want %d", m.ShardCount(), tt.want)
			}
		})
	}
}

func TestMap_ConcurrentAccess(t *testing.T) {
	m := New[int]()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("key-%d", i)
				m.Set(key, g)
				m.Get(key)
				if i%10 == 0 {
					m.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()
}
