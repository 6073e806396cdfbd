package effect

type EventType int

const (
	EventPointerMove EventType = iota
	EventPointerDown
	EventPointerUp
	EventPointerEnter
	EventPointerLeave
	EventKey
	EventResize
)

type Key int

const (
	KeyNone Key = iota
	KeyEnter
	KeyEscape
	KeyRune // Event.Rune holds the letter
)

type Event struct {
	Type EventType
	X, Y float64 // window pixels, origin top-left
	W, H int     // resize payload
	Key  Key
	Rune rune
}

type EventHandler func(Event)

type subscription struct {
	id int
	fn EventHandler
}

// Bus fans input events out to the mounted effects. Every Subscribe hands back
// the matching unsubscribe func.
type Bus struct {
	handlers map[EventType][]subscription
	nextID   int
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]subscription),
	}
}

func (b *Bus) Subscribe(t EventType, fn EventHandler) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.handlers[t] = append(b.handlers[t], subscription{id: id, fn: fn})
	done := false
	return func() {
		if done {
			return
		}
		done = true
		subs := b.handlers[t]
		for i, s := range subs {
			if s.id == id {
				b.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.handlers[t]) == 0 {
			delete(b.handlers, t)
		}
	}
}

func (b *Bus) Emit(e Event) {
	subs := b.handlers[e.Type]
	if len(subs) == 0 {
		return
	}
	// Handlers may unsubscribe while we iterate.
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.fn(e)
	}
}

// Len reports the number of live subscriptions across all event types.
func (b *Bus) Len() int {
	n := 0
	for _, subs := range b.handlers {
		n += len(subs)
	}
	return n
}

// listeners collects unsubscribe funcs so a teardown can release them together.
type listeners []func()

func (l *listeners) add(unsub func()) {
	*l = append(*l, unsub)
}

func (l *listeners) release() {
	for _, unsub := range *l {
		unsub()
	}
	*l = nil
}
