package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"heroacademy/pkg/hero"

	"github.com/rs/zerolog"
)

type fakeStore struct {
	mu      sync.Mutex
	feeds   map[string]chan Snapshot
	active  map[string]int
	created []string
	err     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{feeds: map[string]chan Snapshot{}, active: map[string]int{}}
}

func (s *fakeStore) feed(uid string) chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch, ok := s.feeds[uid]
	if !ok {
		ch = make(chan Snapshot, 4)
		s.feeds[uid] = ch
	}
	return ch
}

func (s *fakeStore) Watch(ctx context.Context, uid string) (<-chan Snapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	in := s.feed(uid)
	s.mu.Lock()
	s.active[uid]++
	s.mu.Unlock()

	out := make(chan Snapshot)
	go func() {
		defer func() {
			s.mu.Lock()
			s.active[uid]--
			s.mu.Unlock()
			close(out)
		}()
		for {
			select {
			case <-ctx.Done():
				return
			case snap := <-in:
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *fakeStore) Create(_ context.Context, p *hero.Profile) error {
	s.mu.Lock()
	s.created = append(s.created, p.UID)
	s.mu.Unlock()
	s.feed(p.UID) <- Snapshot{Exists: true, Profile: p}
	return nil
}

func (s *fakeStore) activeCount(uid string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[uid]
}

func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func nextState(t *testing.T, states <-chan State) State {
	t.Helper()
	select {
	case st, ok := <-states:
		if !ok {
			t.Fatal("state stream closed")
		}
		return st
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for state")
	}
	return State{}
}

func TestBinderCreatesMissingProfileOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newFakeStore()
	events := make(chan Event, 4)
	states := (&Binder{Store: store, Log: zerolog.Nop()}).Run(ctx, events)

	events <- Event{}
	if st := nextState(t, states); !st.Loading {
		t.Fatalf("got %+v, want loading", st)
	}

	events <- Event{Identity: alice, Resolved: true}
	if st := nextState(t, states); !st.Loading || st.Identity != alice {
		t.Fatalf("got %+v, want alice loading", st)
	}

	store.feed("alice") <- Snapshot{Exists: false}
	st := nextState(t, states)
	if st.Loading || st.Profile == nil || st.Profile.UID != "alice" {
		t.Fatalf("got %+v, want alice's default profile", st)
	}
	if st.Profile.HeroProfile.Name != hero.DefaultHeroName || st.Profile.Entitled {
		t.Fatalf("got %+v, want default unentitled hero", st.Profile)
	}

	store.feed("alice") <- Snapshot{Exists: false}
	time.Sleep(50 * time.Millisecond)
	store.mu.Lock()
	created := len(store.created)
	store.mu.Unlock()
	if created != 1 {
		t.Fatalf("got %d creates, want 1", created)
	}
}

func TestBinderSwitchesSubscriptions(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newFakeStore()
	events := make(chan Event, 4)
	states := (&Binder{Store: store, Log: zerolog.Nop()}).Run(ctx, events)

	events <- Event{Identity: alice, Resolved: true}
	nextState(t, states)
	store.feed("alice") <- Snapshot{Exists: true, Profile: &hero.Profile{UID: "alice"}}
	nextState(t, states)

	events <- Event{Identity: bob, Resolved: true}
	if st := nextState(t, states); st.Identity != bob || !st.Loading {
		t.Fatalf("got %+v, want bob loading", st)
	}
	eventually(t, "alice subscription to end", func() bool { return store.activeCount("alice") == 0 })

	store.feed("alice") <- Snapshot{Exists: true, Profile: &hero.Profile{UID: "alice"}}
	store.feed("bob") <- Snapshot{Exists: true, Profile: &hero.Profile{UID: "bob"}}
	if st := nextState(t, states); st.Profile == nil || st.Profile.UID != "bob" {
		t.Fatalf("got %+v, want bob's profile and nothing stale", st)
	}

	events <- Event{Resolved: true}
	if st := nextState(t, states); st.Identity != nil || st.Profile != nil || st.Loading {
		t.Fatalf("got %+v, want signed-out state", st)
	}
	eventually(t, "bob subscription to end", func() bool { return store.activeCount("bob") == 0 })
}

func TestBinderStoreErrorEndsLoading(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := newFakeStore()
	store.err = errors.New("permission denied")
	events := make(chan Event, 4)
	states := (&Binder{Store: store, Log: zerolog.Nop()}).Run(ctx, events)

	events <- Event{Identity: alice, Resolved: true}
	nextState(t, states)
	st := nextState(t, states)
	if st.Loading || st.Profile != nil || st.Err == nil {
		t.Fatalf("got %+v, want error state without data", st)
	}
}

func TestBinderClosesWithEvents(t *testing.T) {
	store := newFakeStore()
	events := make(chan Event)
	states := (&Binder{Store: store, Log: zerolog.Nop()}).Run(context.Background(), events)
	close(events)
	select {
	case _, ok := <-states:
		if ok {
			t.Fatal("got a state, want closed stream")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("state stream not closed")
	}
}
