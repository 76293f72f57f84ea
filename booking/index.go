package booking

import (
	"context"
	"sort"
	"sync"
	"time"
)

// DefaultLockWait bounds how long a reserve call waits for a listing's lock
// before giving up with ErrTransientStorage.
const DefaultLockWait = 5 * time.Second

// Index answers "is this interval free?" and commits new intervals with
// at-most-one-writer-per-listing semantics. It is a materialized view over
// confirmed bookings: each listing's interval set is loaded lazily from the
// Store and kept pairwise non-overlapping from then on.
//
// Locking is scoped per listing. Reserve calls for different listings never
// contend with each other.
type Index struct {
	store    Store
	lockWait time.Duration

	mu       sync.Mutex // guards listings map only
	listings map[uint]*listingSlot
}

// listingSlot holds one listing's confirmed intervals, sorted by check-in.
// The semaphore channel doubles as a mutex whose acquisition can be bounded
// by a timeout or an expiring context.
type listingSlot struct {
	sem       chan struct{}
	loaded    bool
	intervals []Interval
}

func NewIndex(store Store) *Index {
	return &Index{
		store:    store,
		lockWait: DefaultLockWait,
		listings: make(map[uint]*listingSlot),
	}
}

// SetLockWait overrides the lock acquisition timeout. Zero or negative
// restores the default.
func (x *Index) SetLockWait(d time.Duration) {
	if d <= 0 {
		d = DefaultLockWait
	}
	x.lockWait = d
}

func (x *Index) slot(listingID uint) *listingSlot {
	x.mu.Lock()
	defer x.mu.Unlock()

	s, ok := x.listings[listingID]
	if !ok {
		s = &listingSlot{sem: make(chan struct{}, 1)}
		x.listings[listingID] = s
	}
	return s
}

// acquire takes the slot's lock, waiting at most lockWait. A stuck lock-wait
// becomes ErrTransientStorage instead of hanging the caller.
func (s *listingSlot) acquire(ctx context.Context, wait time.Duration) error {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ErrTransientStorage
	case <-timer.C:
		return ErrTransientStorage
	}
}

func (s *listingSlot) release() {
	<-s.sem
}

// ensureLoaded rebuilds the interval set from the store on first touch.
// Caller must hold the slot's lock.
func (s *listingSlot) ensureLoaded(ctx context.Context, store Store, listingID uint) error {
	if s.loaded {
		return nil
	}
	intervals, err := store.ConfirmedIntervals(ctx, listingID)
	if err != nil {
		return ErrTransientStorage
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].CheckIn.Before(intervals[j].CheckIn)
	})
	s.intervals = intervals
	s.loaded = true
	return nil
}

// conflicting returns the first stored interval overlapping iv, if any.
// Caller must hold the slot's lock.
func (s *listingSlot) conflicting(iv Interval) (Interval, bool) {
	// First interval whose checkout is after iv's check-in; only it and its
	// successors can overlap, and iteration stops at iv's checkout.
	i := sort.Search(len(s.intervals), func(i int) bool {
		return s.intervals[i].CheckOut.After(iv.CheckIn)
	})
	for ; i < len(s.intervals); i++ {
		if !s.intervals[i].CheckIn.Before(iv.CheckOut) {
			break
		}
		if s.intervals[i].Overlaps(iv) {
			return s.intervals[i], true
		}
	}
	return Interval{}, false
}

// insert adds iv keeping the set sorted. Caller must hold the slot's lock and
// have ruled out overlap.
func (s *listingSlot) insert(iv Interval) {
	i := sort.Search(len(s.intervals), func(i int) bool {
		return s.intervals[i].CheckIn.After(iv.CheckIn)
	})
	s.intervals = append(s.intervals, Interval{})
	copy(s.intervals[i+1:], s.intervals[i:])
	s.intervals[i] = iv
}

// IsFree reports whether no confirmed booking overlaps iv. Advisory only: the
// answer may be stale by the time the caller acts on it. The authoritative
// decision happens inside Reserve.
func (x *Index) IsFree(ctx context.Context, listingID uint, iv Interval) (bool, error) {
	if err := iv.Validate(); err != nil {
		return false, err
	}

	s := x.slot(listingID)
	if err := s.acquire(ctx, x.lockWait); err != nil {
		return false, err
	}
	defer s.release()

	if err := s.ensureLoaded(ctx, x.store, listingID); err != nil {
		return false, err
	}
	_, conflict := s.conflicting(iv)
	return !conflict, nil
}

// Reserve atomically checks iv against the listing's confirmed intervals and,
// if free, runs commit (the booking persistence) before admitting iv into the
// set. The interval is indexed only after commit succeeds, so the index and
// the booking store never disagree: a failed commit leaves no trace, and no
// other writer can squeeze in between the check and the insert.
//
// Two concurrent calls with overlapping intervals on the same listing resolve
// to exactly one winner; the loser gets ErrSlotUnavailable. Identical calls on
// different listings proceed in parallel.
func (x *Index) Reserve(ctx context.Context, listingID uint, iv Interval, commit func(ctx context.Context) error) error {
	if err := iv.Validate(); err != nil {
		return err
	}

	s := x.slot(listingID)
	if err := s.acquire(ctx, x.lockWait); err != nil {
		return err
	}
	defer s.release()

	if err := s.ensureLoaded(ctx, x.store, listingID); err != nil {
		return err
	}
	if _, conflict := s.conflicting(iv); conflict {
		return ErrSlotUnavailable
	}
	if commit != nil {
		if err := commit(ctx); err != nil {
			return err
		}
	}
	s.insert(iv)
	return nil
}
