package state

var argHandlers = map[State]ArgHandler{}

// RegisterHandler associates a state with the handler that consumes its argument.
// Registration happens during bot wiring, before updates flow.
func RegisterHandler(st State, h ArgHandler) {
	if st == StateIdle || h == nil {
		return
	}
	argHandlers[st] = h
}

// HandlerFor returns the argument handler registered for the given state.
func HandlerFor(st State) (ArgHandler, bool) {
	h, ok := argHandlers[st]
	return h, ok
}
