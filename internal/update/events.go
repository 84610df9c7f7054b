package update

import "sync"

// EventType names a lifecycle notification.
type EventType string

const (
	EventCheckingForUpdate  EventType = "checking-for-update"
	EventUpdateAvailable    EventType = "update-available"
	EventUpdateNotAvailable EventType = "update-not-available"
	EventDownloadProgress   EventType = "download-progress"
	EventUpdateDownloaded   EventType = "update-downloaded"
	EventError              EventType = "error"
)

// Event is a notification emitted by an Updater. Only the fields relevant
// to Type are set.
type Event struct {
	Type EventType

	// Current and Latest are set for update-not-available.
	Current string
	Latest  string

	// Artifact is set for update-available and update-downloaded.
	Artifact *Artifact

	// Progress is set for download-progress.
	Progress Progress

	// Path is the downloaded file, set for update-downloaded.
	Path string

	// Err is set for error.
	Err error
}

// EventHandler receives events. Handlers run synchronously on the goroutine
// that emitted the event and must not block for long.
type EventHandler func(Event)

type emitter struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]EventHandler
	order    []int
}

// on registers h and returns a function that removes it.
func (e *emitter) on(h EventHandler) func() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.handlers == nil {
		e.handlers = make(map[int]EventHandler)
	}
	id := e.nextID
	e.nextID++
	e.handlers[id] = h
	e.order = append(e.order, id)

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.handlers, id)
		for i, v := range e.order {
			if v == id {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
	}
}

// emit delivers ev to every handler in registration order. The handler list
// is copied first so handlers may register or remove handlers.
func (e *emitter) emit(ev Event) {
	e.mu.Lock()
	handlers := make([]EventHandler, 0, len(e.order))
	for _, id := range e.order {
		handlers = append(handlers, e.handlers[id])
	}
	e.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
