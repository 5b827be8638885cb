// Package notify delivers library changes to observers.
package notify

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmynk/biblio/internal/models"
)

// Observer receives every change published on a Bus.
// source is the name of the library that changed.
type Observer interface {
	OnChange(source string, change models.Change) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(source string, change models.Change) error

// OnChange implements Observer.
func (f ObserverFunc) OnChange(source string, change models.Change) error {
	return f(source, change)
}

// Bus dispatches changes synchronously, in subscription order.
// A failing observer (error or panic) is logged and skipped; the remaining
// observers still receive the change.
type Bus struct {
	mu        sync.Mutex
	nextID    int
	observers []subscription
	logger    *slog.Logger
}

type subscription struct {
	id       int
	observer Observer
}

// NewBus creates a Bus that reports observer failures to logger.
// A nil logger means slog.Default().
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{logger: logger}
}

// Subscribe adds o to the bus. The returned func removes it again and may be
// called more than once.
func (b *Bus) Subscribe(o Observer) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.observers = append(b.observers, subscription{id: id, observer: o})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.observers {
		if s.id == id {
			b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of subscribed observers.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.observers)
}

// Publish delivers change to every observer and returns how many of them
// failed.
func (b *Bus) Publish(source string, change models.Change) int {
	b.mu.Lock()
	observers := make([]subscription, len(b.observers))
	copy(observers, b.observers)
	b.mu.Unlock()

	failed := 0
	for _, s := range observers {
		if err := b.deliver(s.observer, source, change); err != nil {
			failed++
			b.logger.Error("Observer failed",
				"source", source,
				"change", change.String(),
				"subscription", s.id,
				"error", err,
			)
		}
	}
	return failed
}

func (b *Bus) deliver(o Observer, source string, change models.Change) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panicked: %v", r)
		}
	}()
	return o.OnChange(source, change)
}
