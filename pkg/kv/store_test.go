package kv

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_GetSet(t *testing.T) {
	s := New[string, string]()

	s.Set("dt-feat-x", "working")
	val, ok := s.Get("dt-feat-x")
	assert.True(t, ok)
	assert.Equal(t, "working", val)

	_, ok = s.Get("dt-main")
	assert.False(t, ok)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := New[string, string]()

	s.Set("dt-feat-x", "working")
	s.Set("dt-feat-x", "idle")

	val, _ := s.Get("dt-feat-x")
	assert.Equal(t, "idle", val)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Delete(t *testing.T) {
	s := New[string, string]()
	s.Set("dt-feat-x", "idle")

	s.Delete("dt-feat-x")

	_, ok := s.Get("dt-feat-x")
	assert.False(t, ok)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New[int, int]()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Set(n, n*2)
		}(i)
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Get(n)
		}(i)
	}

	wg.Wait()

	assert.Equal(t, 100, s.Len())
}
