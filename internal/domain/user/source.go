package user

import "sync"

// IdentitySource holds the current viewer, if any, and notifies subscribers
// whenever it changes. A nil identity means signed out.
type IdentitySource struct {
	mu      sync.RWMutex
	current *Identity
	nextID  int
	subs    map[int]func(*Identity)
}

func NewIdentitySource(initial *Identity) *IdentitySource {
	return &IdentitySource{
		current: cloneIdentity(initial),
		subs:    make(map[int]func(*Identity)),
	}
}

func (s *IdentitySource) Current() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneIdentity(s.current)
}

// Set replaces the identity and notifies subscribers when the user changed.
func (s *IdentitySource) Set(identity *Identity) {
	s.mu.Lock()
	if sameUser(s.current, identity) {
		s.current = cloneIdentity(identity)
		s.mu.Unlock()
		return
	}
	s.current = cloneIdentity(identity)
	subs := make([]func(*Identity), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(cloneIdentity(identity))
	}
}

// Subscribe registers fn for identity changes. The returned func unsubscribes.
func (s *IdentitySource) Subscribe(fn func(*Identity)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

func sameUser(a, b *Identity) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.UserID == b.UserID
}

func cloneIdentity(identity *Identity) *Identity {
	if identity == nil {
		return nil
	}
	out := *identity
	return &out
}
