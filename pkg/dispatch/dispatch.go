package dispatch

// Executor runs functions on some execution context.
type Executor interface {
	Execute(fn func())
}

// ExecutorFunc adapts a plain function to the Executor interface.
type ExecutorFunc func(fn func())

func (f ExecutorFunc) Execute(fn func()) {
	f(fn)
}

type inline struct{}

func (inline) Execute(fn func()) { fn() }

type goroutine struct{}

func (goroutine) Execute(fn func()) { go fn() }

var (
	// Inline runs fn on the calling goroutine before Execute returns.
	Inline Executor = inline{}
	// Goroutine runs every fn on its own new goroutine.
	Goroutine Executor = goroutine{}
)
