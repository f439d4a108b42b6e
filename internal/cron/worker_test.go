package cron

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/creativecommons/legal-tools-backend/pkg/logger"
	"github.com/rs/zerolog"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

type stubLock struct {
	acquired   bool
	acquireErr error
	releases   int
}

func (l *stubLock) Acquire(ctx context.Context) (bool, error) {
	if l.acquireErr != nil {
		return false, l.acquireErr
	}
	return l.acquired, nil
}

func (l *stubLock) Release(ctx context.Context) error {
	l.releases++
	return nil
}

type countingJob struct {
	name string
	runs int
	err  error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestNewWorkerValidatesInputs(t *testing.T) {
	if _, err := NewWorker(WorkerParams{Lock: &stubLock{}}); err == nil {
		t.Fatal("expected error for missing logger")
	}
	if _, err := NewWorker(WorkerParams{Logger: testLogger()}); err == nil {
		t.Fatal("expected error for missing lock")
	}
}

func TestRunOnceRunsJobsWhenLocked(t *testing.T) {
	lock := &stubLock{acquired: true}
	good := &countingJob{name: "good"}
	bad := &countingJob{name: "bad", err: errors.New("boom")}
	worker, err := NewWorker(WorkerParams{
		Logger: testLogger(),
		Lock:   lock,
		Jobs:   []Job{good, nil, bad},
	})
	if err != nil {
		t.Fatalf("NewWorker: %v", err)
	}

	if err := worker.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if good.runs != 1 || bad.runs != 1 {
		t.Fatalf("expected each job to run once, got %d and %d", good.runs, bad.runs)
	}
	if lock.releases != 1 {
		t.Fatalf("expected lock released once, got %d", lock.releases)
	}
}

func TestRunOnceSkipsWhenLockHeldElsewhere(t *testing.T) {
	lock := &stubLock{acquired: false}
	job := &countingJob{name: "job"}
	worker, _ := NewWorker(WorkerParams{Logger: testLogger(), Lock: lock, Jobs: []Job{job}})

	if err := worker.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.runs != 0 {
		t.Fatal("job must not run without the lock")
	}
	if lock.releases != 0 {
		t.Fatal("lock must not be released when never acquired")
	}
}

func TestRunOnceSurfacesAcquireError(t *testing.T) {
	lock := &stubLock{acquireErr: errors.New("redis down")}
	worker, _ := NewWorker(WorkerParams{Logger: testLogger(), Lock: lock})

	if err := worker.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

type mapLockStore struct {
	values map[string]string
	setErr error
}

func (s *mapLockStore) SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error) {
	if s.setErr != nil {
		return false, s.setErr
	}
	if s.values == nil {
		s.values = map[string]string{}
	}
	if _, exists := s.values[key]; exists {
		return false, nil
	}
	s.values[key] = value.(string)
	return true, nil
}

func (s *mapLockStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := s.values[key]
	if !ok {
		return "", errors.New("redis: nil")
	}
	return value, nil
}

func (s *mapLockStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(s.values, key)
	}
	return nil
}

func TestRedisLockAcquireRelease(t *testing.T) {
	store := &mapLockStore{}
	lock, err := NewRedisLock(store, "lt:lock:cron-worker", time.Minute)
	if err != nil {
		t.Fatalf("NewRedisLock: %v", err)
	}

	ok, err := lock.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected acquire, got ok=%v err=%v", ok, err)
	}

	second, _ := NewRedisLock(store, "lt:lock:cron-worker", time.Minute)
	ok, err = second.Acquire(context.Background())
	if err != nil || ok {
		t.Fatalf("expected contention, got ok=%v err=%v", ok, err)
	}

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = second.Acquire(context.Background())
	if err != nil || !ok {
		t.Fatalf("expected acquire after release, got ok=%v err=%v", ok, err)
	}
}

func TestRedisLockReleaseSkipsForeignOwner(t *testing.T) {
	store := &mapLockStore{values: map[string]string{"lt:lock:cron-worker": "someone-else"}}
	lock, _ := NewRedisLock(store, "lt:lock:cron-worker", time.Minute)
	lock.owner = "me"

	if err := lock.Release(context.Background()); err != nil {
		t.Fatalf("release: %v", err)
	}
	if _, ok := store.values["lt:lock:cron-worker"]; !ok {
		t.Fatal("foreign lock must not be deleted")
	}
}
