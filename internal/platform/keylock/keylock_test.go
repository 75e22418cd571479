package keylock

import (
	"sync"
	"testing"
)

func TestLocker_SerializesSameKey(t *testing.T) {
	t.Parallel()

	locker := New()
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locker.Lock("user-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("expected 50 increments, got %d", counter)
	}
	if locker.size() != 0 {
		t.Fatalf("expected idle keys to be released, got %d", locker.size())
	}
}

func TestLocker_DifferentKeysDoNotBlock(t *testing.T) {
	t.Parallel()

	locker := New()
	unlockA := locker.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locker.Lock("b")
		unlock()
		close(done)
	}()
	<-done
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	t.Parallel()

	locker := New()
	unlock := locker.Lock("a")
	unlock()
	unlock()

	again := locker.Lock("a")
	again()
	if locker.size() != 0 {
		t.Fatalf("expected no tracked keys, got %d", locker.size())
	}
}
