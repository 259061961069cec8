package survey

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// IDCounter hands out strictly increasing ids without locking. The first id is 0.
type IDCounter struct {
	next atomic.Uint64
}

func (c *IDCounter) Next() uint64 {
	return c.next.Add(1) - 1
}

// Registry maps survey ids to surveys. Its mutex covers only the map; callers
// work on the returned *Survey without holding it.
type Registry struct {
	ids IDCounter

	mu      sync.Mutex
	surveys map[uint64]*Survey
}

func NewRegistry() *Registry {
	return &Registry{surveys: make(map[uint64]*Survey)}
}

func (r *Registry) AllocateID() uint64 {
	return r.ids.Next()
}

// Create stores s under a fresh id and returns that id. s must not be shared
// before this call.
func (r *Registry) Create(s *Survey) uint64 {
	id := r.AllocateID()
	s.ID = id

	r.mu.Lock()
	r.surveys[id] = s
	r.mu.Unlock()
	return id
}

func (r *Registry) Get(id uint64) (*Survey, error) {
	r.mu.Lock()
	s, ok := r.surveys[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrUnknownSurvey, id)
	}
	return s, nil
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.surveys)
}
