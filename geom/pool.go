package geom

const poolBlockSize = 64

// Pool hands out scratch vectors for nested computations in the render
// loop. Borrows are released in bulk when the enclosing scope ends, so a
// steady-state frame allocates nothing. Blocks are never moved, which keeps
// returned pointers valid until their scope is popped.
type Pool struct {
	blocks [][]Vector2
	used   int
	marks  []int
}

// Push opens a scope. Every vector borrowed after Push is reclaimed by the
// matching Pop.
func (p *Pool) Push() {
	p.marks = append(p.marks, p.used)
}

// Pop closes the innermost scope.
func (p *Pool) Pop() {
	if len(p.marks) == 0 {
		panic("geom: Pool.Pop without matching Push")
	}
	last := len(p.marks) - 1
	p.used = p.marks[last]
	p.marks = p.marks[:last]
}

// Scope runs fn inside its own Push/Pop pair.
func (p *Pool) Scope(fn func()) {
	p.Push()
	defer p.Pop()
	fn()
}

// Get borrows a zeroed vector. It panics outside of a scope since nothing
// would ever release it.
func (p *Pool) Get() *Vector2 {
	if len(p.marks) == 0 {
		panic("geom: Pool.Get outside of a scope")
	}
	block, idx := p.used/poolBlockSize, p.used%poolBlockSize
	if block == len(p.blocks) {
		p.blocks = append(p.blocks, make([]Vector2, poolBlockSize))
	}
	p.used++
	v := &p.blocks[block][idx]
	*v = Vector2{}
	return v
}

// InUse returns the number of vectors currently borrowed.
func (p *Pool) InUse() int {
	return p.used
}

// Depth returns the number of open scopes.
func (p *Pool) Depth() int {
	return len(p.marks)
}
