package formlib

// store holds the mutable form state behind a reference-stable controller.
// It is single-goroutine like the render host, so no locking.
type store struct {
	values      map[string]string
	errors      map[string]string
	submitCount int
	submitting  bool
	version     uint64
	nextSubID   int
	subs        map[int]func()
}

func newStore(defaults map[string]string) *store {
	values := make(map[string]string, len(defaults))
	for k, v := range defaults {
		values[k] = v
	}

	return &store{
		values: values,
		errors: map[string]string{},
		subs:   map[int]func(){},
	}
}

// subscribe registers a change listener and returns its removal func.
func (s *store) subscribe(notify func()) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subs[id] = notify

	return func() { delete(s.subs, id) }
}

// broadcast bumps the version and fans the change out to every listener.
func (s *store) broadcast() {
	s.version++

	for _, notify := range s.subs {
		notify()
	}
}
