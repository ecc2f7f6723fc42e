// Package state holds the dashboard's in-memory view of server state.
//
// Every write builds a new Snapshot and swaps it in; nothing held by a reader
// is modified afterwards. Readers get copies, so they may keep or change what
// they receive.
package state

import (
	"slices"
	"sync"

	"github.com/GregMSThompson/family-savings/internal/models"
)

// Snapshot is the state at one point in time. Children is populated for
// parent and admin users, MyGoal for child users; never both.
type Snapshot struct {
	User     *models.User
	Children []models.Child
	MyGoal   *models.Child
	Loading  bool
	// Omitted lists children whose detail failed to load.
	Omitted []string
	// LoadErr is set when the profile or the children list could not be
	// loaded; the dashboard can be reloaded.
	LoadErr error
}

// TotalSavings sums the current amount of every loaded child.
func (s Snapshot) TotalSavings() float64 {
	var total float64
	for _, c := range s.Children {
		total += c.Goal.CurrentAmount
	}
	return total
}

func (s Snapshot) Child(id string) (models.Child, bool) {
	i := indexOf(s.Children, id)
	if i < 0 {
		return models.Child{}, false
	}
	return s.Children[i], true
}

func (s Snapshot) clone() Snapshot {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Children != nil {
		out.Children = make([]models.Child, len(s.Children))
		for i, c := range s.Children {
			out.Children[i] = c.Clone()
		}
	}
	if s.MyGoal != nil {
		g := s.MyGoal.Clone()
		out.MyGoal = &g
	}
	out.Omitted = slices.Clone(s.Omitted)
	return out
}

type Store struct {
	mu     sync.RWMutex
	snap   Snapshot
	subs   map[int]chan Snapshot
	nextID int
}

func New() *Store {
	return &Store{subs: map[int]chan Snapshot{}}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

func (s *Store) User() *models.User {
	return s.Snapshot().User
}

func (s *Store) Children() []models.Child {
	return s.Snapshot().Children
}

func (s *Store) Child(id string) (models.Child, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.snap.Child(id)
	if !ok {
		return models.Child{}, false
	}
	return c.Clone(), true
}

func (s *Store) MyGoal() *models.Child {
	return s.Snapshot().MyGoal
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Loading
}

// TotalSavings is computed from the children on every call.
func (s *Store) TotalSavings() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.TotalSavings()
}

// Subscribe returns a channel receiving each new snapshot. Slow readers only
// see the latest one. cancel closes the channel.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	ch := make(chan Snapshot, 1)
	s.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) SetLoading(loading bool) {
	s.update(func(next *Snapshot) {
		next.Loading = loading
	})
}

func (s *Store) SetUser(u models.User) {
	s.update(func(next *Snapshot) {
		next.User = &u
	})
}

// SetChildren replaces the children collection and clears MyGoal.
func (s *Store) SetChildren(children []models.Child) {
	cp := make([]models.Child, len(children))
	for i, c := range children {
		cp[i] = c.Clone()
	}
	s.update(func(next *Snapshot) {
		next.Children = cp
		next.MyGoal = nil
	})
}

// SetMyGoal sets the child-role projection and clears the children collection.
// A nil goal means the user has no linked goal.
func (s *Store) SetMyGoal(c *models.Child) {
	var g *models.Child
	if c != nil {
		cp := c.Clone()
		g = &cp
	}
	s.update(func(next *Snapshot) {
		next.MyGoal = g
		next.Children = nil
	})
}

// SetLoadResult records the outcome of a load. err is nil on success.
func (s *Store) SetLoadResult(omitted []string, err error) {
	o := slices.Clone(omitted)
	s.update(func(next *Snapshot) {
		next.Omitted = o
		next.LoadErr = err
	})
}

// ReplaceChild swaps the child with the same id for c. It reports false when
// no such child is held.
func (s *Store) ReplaceChild(c models.Child) bool {
	c = c.Clone()
	found := false
	s.update(func(next *Snapshot) {
		if next.MyGoal != nil && next.MyGoal.ID == c.ID {
			found = true
			next.MyGoal = &c
			return
		}
		i := indexOf(next.Children, c.ID)
		if i < 0 {
			return
		}
		found = true
		children := slices.Clone(next.Children)
		children[i] = c
		next.Children = children
	})
	return found
}

// AppendChild adds c at the end, or replaces an existing child with its id.
func (s *Store) AppendChild(c models.Child) {
	c = c.Clone()
	s.update(func(next *Snapshot) {
		children := slices.Clone(next.Children)
		if i := indexOf(children, c.ID); i >= 0 {
			children[i] = c
		} else {
			children = append(children, c)
		}
		next.Children = children
	})
}

// RemoveChild drops the child with id. It reports false when none was held.
func (s *Store) RemoveChild(id string) bool {
	found := false
	s.update(func(next *Snapshot) {
		i := indexOf(next.Children, id)
		if i < 0 {
			return
		}
		found = true
		next.Children = slices.Delete(slices.Clone(next.Children), i, i+1)
	})
	return found
}

// Reset clears everything, e.g. when the session ends.
func (s *Store) Reset() {
	s.update(func(next *Snapshot) {
		*next = Snapshot{}
	})
}

// update applies fn to a shallow copy of the current snapshot, installs the
// result and notifies subscribers. fn must replace, not modify, any slice or
// pointer it changes.
func (s *Store) update(fn func(next *Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap
	fn(&next)
	s.snap = next

	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- next.clone()
	}
}

func indexOf(children []models.Child, id string) int {
	return slices.IndexFunc(children, func(c models.Child) bool { return c.ID == id })
}
