package service

import (
	"sync"

	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/domain"
	"github.com/PrathamSatpute/SkillSwap-Hackthon/internal/store"
)

// BroadcastRecorder tracks stream listeners and deliveries.
type BroadcastRecorder interface {
	ListenerAdded()
	ListenerRemoved()
	Delivered()
}

type noopBroadcasts struct{}

func (noopBroadcasts) ListenerAdded()   {}
func (noopBroadcasts) ListenerRemoved() {}
func (noopBroadcasts) Delivered()       {}

const listenerBuffer = 8

// Broadcaster fans newly created active admin messages out to listeners.
// A listener that falls behind misses messages rather than blocking the store.
type Broadcaster struct {
	mu          sync.Mutex
	listeners   map[int]chan domain.AdminMessage
	nextID      int
	closed      bool
	recorder    BroadcastRecorder
	unsubscribe func()
}

// NewBroadcaster subscribes to st. Call Close to detach.
func NewBroadcaster(st interface{ Subscribe(store.Listener) func() }, rec BroadcastRecorder) *Broadcaster {
	if rec == nil {
		rec = noopBroadcasts{}
	}
	b := &Broadcaster{listeners: make(map[int]chan domain.AdminMessage), recorder: rec}
	b.unsubscribe = st.Subscribe(b.onChange)
	return b
}

func (b *Broadcaster) onChange(_ store.State, a store.Action) {
	add, ok := a.(store.AddAdminMessage)
	if !ok || !add.Message.IsActive {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.listeners {
		select {
		case ch <- add.Message:
			b.recorder.Delivered()
		default:
		}
	}
}

// Listen returns a channel of new messages and a function that stops
// delivery and closes the channel. After Close the channel is already closed.
func (b *Broadcaster) Listen() (<-chan domain.AdminMessage, func()) {
	ch := make(chan domain.AdminMessage, listenerBuffer)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.listeners[id] = ch
	b.mu.Unlock()
	b.recorder.ListenerAdded()

	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, open := b.listeners[id]; !open {
			return
		}
		delete(b.listeners, id)
		close(ch)
		b.recorder.ListenerRemoved()
	}
}

// Close detaches from the store and closes every open listener.
func (b *Broadcaster) Close() {
	b.unsubscribe()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for id, ch := range b.listeners {
		delete(b.listeners, id)
		close(ch)
		b.recorder.ListenerRemoved()
	}
}
