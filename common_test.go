package graft

// arithmetic seeds shared across the engine tests
func div(x, y float64) float64      { return x / y }
func add2(x, y int) int             { return x + y }
func add3(x, y, z int) int          { return x + y + z }
func double(x int) int              { return x * 2 }
func concat3(a, b, c string) string { return a + b + c }

// journal collects ordered event strings from test interceptors.
type journal struct {
	events []string
}

func (j *journal) add(e string) {
	j.events = append(j.events, e)
}

// markInterceptor records its Init invocations and tags each wrapped
// call with enter and exit events, so tests can assert nesting order.
// It serves as both interceptor kinds.
type markInterceptor[S any] struct {
	label   string
	initErr error
	j       *journal
}

func (m *markInterceptor[S]) Init(owner string) error {
	m.j.add("init:" + m.label + ":" + owner)
	return m.initErr
}

func (m *markInterceptor[S]) Wrap(next Transform[S]) Transform[S] {
	m.j.add("wrap:" + m.label)
	return func(s S) S {
		m.j.add("enter:" + m.label)
		out := next(s)
		m.j.add("exit:" + m.label)
		return out
	}
}
