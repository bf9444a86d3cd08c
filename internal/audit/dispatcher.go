package audit

import (
	"log/slog"
	"sync"
)

const (
	ActorEmployee = "employee"
	ActorClient   = "client"
	ActorPublic   = "public"
)

type Event struct {
	ActorID   *uint
	ActorKind string
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Sink é o que os casos de uso enxergam da auditoria.
type Sink interface {
	Dispatch(ev Event)
}

type store interface {
	Log(ev Event) error
}

type Dispatcher struct {
	store  store
	log    *slog.Logger
	queue  chan Event
	done   chan struct{}
	closer sync.Once
}

func NewDispatcher(store store, log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		store: store,
		log:   log,
		queue: make(chan Event, 100), // buffer seguro
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.store.Log(ev); err != nil {
			d.log.Error("audit write failed", "action", ev.Action, "err", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// fila cheia → descartamos audit (nunca quebrar API)
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close drena a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	d.closer.Do(func() {
		close(d.queue)
	})
	<-d.done
}
