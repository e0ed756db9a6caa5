package flight

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDo_ReturnsResultAndClearsEntry(t *testing.T) {
	var g Group

	got, err := Do(&g, context.Background(), "events", func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got != 42 {
		t.Fatalf("Do = %d, want 42", got)
	}
	if g.Pending("events") {
		t.Fatal("entry still registered after completion")
	}
}

func TestDo_SupersedesEarlierCall(t *testing.T) {
	var g Group

	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		_, err := Do(&g, context.Background(), "events", func(ctx context.Context) (string, error) {
			close(started)
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-release:
				return "first", nil
			}
		})
		firstDone <- err
	}()

	<-started

	got, err := Do(&g, context.Background(), "events", func(ctx context.Context) (string, error) {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "second", nil
	})
	if err != nil {
		t.Fatalf("second Do returned error: %v", err)
	}
	if got != "second" {
		t.Fatalf("second Do = %q, want %q", got, "second")
	}

	// The superseded call resolves to the zero value with no error.
	if err := <-firstDone; err != nil {
		t.Fatalf("superseded Do returned error: %v", err)
	}
	close(release)
}

func TestDo_LastOfManyWins(t *testing.T) {
	var g Group

	const n = 5
	block := make(chan struct{})
	var mu sync.Mutex
	var cancelled int

	var wg sync.WaitGroup
	results := make([]int, n)
	for i := 0; i < n-1; i++ {
		wg.Add(1)
		ready := make(chan struct{})
		go func(i int) {
			defer wg.Done()
			results[i], _ = Do(&g, context.Background(), "k", func(ctx context.Context) (int, error) {
				close(ready)
				select {
				case <-ctx.Done():
					mu.Lock()
					cancelled++
					mu.Unlock()
					return 0, ctx.Err()
				case <-block:
					return i + 1, nil
				}
			})
		}(i)
		<-ready
	}

	last, err := Do(&g, context.Background(), "k", func(ctx context.Context) (int, error) {
		return 99, nil
	})
	if err != nil {
		t.Fatalf("last Do returned error: %v", err)
	}
	if last != 99 {
		t.Fatalf("last Do = %d, want 99", last)
	}

	close(block)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if cancelled != n-1 {
		t.Fatalf("cancelled = %d, want %d", cancelled, n-1)
	}
	for i := 0; i < n-1; i++ {
		if results[i] != 0 {
			t.Fatalf("superseded call %d produced result %d, want 0", i, results[i])
		}
	}
}

func TestDo_LateLoserDoesNotEvictWinner(t *testing.T) {
	var g Group

	firstStarted := make(chan struct{})
	firstRelease := make(chan struct{})
	firstDone := make(chan struct{})

	go func() {
		defer close(firstDone)
		_, _ = Do(&g, context.Background(), "k", func(ctx context.Context) (int, error) {
			close(firstStarted)
			<-firstRelease
			return 0, ctx.Err()
		})
	}()

	<-firstStarted

	secondStarted := make(chan struct{})
	secondRelease := make(chan struct{})
	secondDone := make(chan struct{})

	go func() {
		defer close(secondDone)
		_, _ = Do(&g, context.Background(), "k", func(ctx context.Context) (int, error) {
			close(secondStarted)
			<-secondRelease
			return 7, nil
		})
	}()

	<-secondStarted

	// Let the aborted first call finish while the second is still running.
	close(firstRelease)
	<-firstDone

	if !g.Pending("k") {
		t.Fatal("late completion of superseded call removed the active entry")
	}

	close(secondRelease)
	<-secondDone

	if g.Pending("k") {
		t.Fatal("entry still registered after winner completed")
	}
}

func TestDo_RealErrorsPropagate(t *testing.T) {
	var g Group

	boom := errors.New("boom")
	_, err := Do(&g, context.Background(), "k", func(ctx context.Context) (int, error) {
		return 0, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Do error = %v, want boom", err)
	}
}

func TestCancel_AbortsInFlightCall(t *testing.T) {
	var g Group

	started := make(chan struct{})
	done := make(chan error, 1)

	go func() {
		_, err := Do(&g, context.Background(), "activity", func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})
		done <- err
	}()

	<-started
	g.Cancel("activity")

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancelled Do returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled call did not finish")
	}
}
