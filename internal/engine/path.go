package engine

// path is a fixed-capacity ring deque of snake segments, head at the front.
// Capacity equals the board size, which bounds the snake length.
type path struct {
	buf  []Coord
	head int // index of the front element
	n    int
}

func newPath(capacity int) *path {
	return &path{buf: make([]Coord, capacity)}
}

func (p *path) len() int {
	return p.n
}

func (p *path) pushFront(c Coord) {
	if p.n == len(p.buf) {
		panic("engine: snake path overflow")
	}
	p.head--
	if p.head < 0 {
		p.head = len(p.buf) - 1
	}
	p.buf[p.head] = c
	p.n++
}

func (p *path) popBack() Coord {
	if p.n == 0 {
		panic("engine: pop from empty snake path")
	}
	i := (p.head + p.n - 1) % len(p.buf)
	c := p.buf[i]
	p.n--
	return c
}

func (p *path) front() Coord {
	return p.buf[p.head]
}

// at returns the i-th segment counting from the head.
func (p *path) at(i int) Coord {
	return p.buf[(p.head+i)%len(p.buf)]
}
