package flow

// Subscription cancels a registered listener.
type Subscription struct {
	cancel func()
}

// Unsubscribe removes the listener. It is safe to call more than once and
// on the zero Subscription.
func (s Subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type observer[F any] struct {
	id int
	fn F
}

// observers is an ordered listener list with stable unsubscribe handles.
type observers[F any] struct {
	next    int
	entries []observer[F]
}

func (o *observers[F]) add(fn F) Subscription {
	o.next++
	id := o.next
	o.entries = append(o.entries, observer[F]{id: id, fn: fn})
	return Subscription{cancel: func() { o.remove(id) }}
}

func (o *observers[F]) remove(id int) {
	for i, e := range o.entries {
		if e.id == id {
			o.entries = append(o.entries[:i:i], o.entries[i+1:]...)
			return
		}
	}
}

// each calls fn for a snapshot of the listeners, so listeners may
// unsubscribe while being notified.
func (o *observers[F]) each(fn func(F)) {
	snapshot := append([]observer[F](nil), o.entries...)
	for _, e := range snapshot {
		fn(e.fn)
	}
}

func (o *observers[F]) len() int {
	return len(o.entries)
}
