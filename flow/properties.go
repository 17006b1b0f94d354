package flow

// PropertyListener receives the changed property with its old and new values.
type PropertyListener func(name string, oldValue, newValue Value)

// Properties is a node's named value store with change notification.
type Properties struct {
	values map[string]Value
	any    observers[PropertyListener]
	named  map[string]*observers[PropertyListener]
}

func NewProperties() *Properties {
	return &Properties{
		values: make(map[string]Value),
		named:  make(map[string]*observers[PropertyListener]),
	}
}

// Set stores value under name. Setting a value equal to the current one is
// a no-op; otherwise wildcard listeners fire first, then name's listeners.
func (p *Properties) Set(name string, value Value) {
	old := p.values[name]
	if old.Equal(value) {
		return
	}
	p.values[name] = value

	p.any.each(func(fn PropertyListener) { fn(name, old, value) })
	if list, ok := p.named[name]; ok {
		list.each(func(fn PropertyListener) { fn(name, old, value) })
	}
}

// Get returns the value stored under name.
func (p *Properties) Get(name string) (Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

// Len returns how many properties are set.
func (p *Properties) Len() int {
	return len(p.values)
}

func (p *Properties) Subscribe(name string, fn PropertyListener) Subscription {
	list, ok := p.named[name]
	if !ok {
		list = &observers[PropertyListener]{}
		p.named[name] = list
	}
	return list.add(fn)
}

func (p *Properties) SubscribeAll(fn PropertyListener) Subscription {
	return p.any.add(fn)
}
