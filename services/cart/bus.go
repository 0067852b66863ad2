package cart

import (
	"sync"

	"masarra/utils"

	"go.uber.org/zap"
)

// ChangeBus is the in-process observer registry for cart mutations. There is
// no ordering guarantee among listeners and no replay of missed events.
type ChangeBus struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(userID string)
}

// NewChangeBus returns an empty bus.
func NewChangeBus() *ChangeBus {
	return &ChangeBus{listeners: make(map[int]func(string))}
}

// Subscribe registers a listener and returns a func that removes it.
func (b *ChangeBus) Subscribe(fn func(userID string)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.listeners[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.listeners, id)
	}
}

// Notify invokes every registered listener synchronously. Each invocation is
// isolated: a panicking listener cannot suppress the others or fail the
// mutation that triggered the notification.
func (b *ChangeBus) Notify(userID string) {
	b.mu.Lock()
	fns := make([]func(string), 0, len(b.listeners))
	for _, fn := range b.listeners {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		func() {
			defer func() {
				if r := recover(); r != nil {
					utils.GetLogger().Error("Cart change listener panicked",
						zap.String("userID", userID), zap.Any("panic", r))
				}
			}()
			fn(userID)
		}()
	}
}
