package monitor

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/phil-mansfield/goccp/sim"
)

const (
	broadcastBuffer = 64
	writeTimeout    = 10 * time.Second
)

// Broadcaster sends a JSON Snapshot to every connected websocket client
// every Interval steps, as well as at the start and end of the run.
//
// Broadcaster never blocks the simulation: if clients fall behind, snapshots
// are dropped.
type Broadcaster struct {
	Interval int

	mu       sync.RWMutex
	clients  map[*websocket.Conn]bool
	upgrader websocket.Upgrader

	broadcast  chan []byte
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
	wg         sync.WaitGroup

	dropped int
}

// NewBroadcaster creates a Broadcaster and starts its goroutine. Close must
// be called to stop it.
func NewBroadcaster(interval int) *Broadcaster {
	b := &Broadcaster{
		Interval:   interval,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	b.wg.Add(1)
	go b.run()

	return b
}

// ServeHTTP upgrades the request to a websocket connection and registers it.
// Messages from the client are discarded.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	select {
	case b.register <- conn:
	case <-b.done:
		conn.Close()
		return
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	select {
	case b.unregister <- conn:
	case <-b.done:
	}
}

// Clients returns the number of connected clients.
func (b *Broadcaster) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Dropped returns the number of snapshots which were dropped because the
// queue was full.
func (b *Broadcaster) Dropped() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

func (b *Broadcaster) Notify(ev sim.Event, st sim.State) error {
	if !every(b.Interval, ev, st) {
		return nil
	}
	msg, err := NewSnapshot(ev, st).JSON()
	if err != nil {
		return err
	}

	select {
	case <-b.done:
	case b.broadcast <- msg:
	default:
		b.mu.Lock()
		b.dropped++
		b.mu.Unlock()
	}
	return nil
}

func (b *Broadcaster) run() {
	defer b.wg.Done()
	for {
		select {
		case <-b.done:
			return

		case conn := <-b.register:
			b.mu.Lock()
			b.clients[conn] = true
			b.mu.Unlock()

		case conn := <-b.unregister:
			b.mu.Lock()
			if b.clients[conn] {
				delete(b.clients, conn)
				conn.Close()
			}
			b.mu.Unlock()

		case msg := <-b.broadcast:
			b.send(msg)
		}
	}
}

// send writes msg to every client, dropping the ones which fail.
func (b *Broadcaster) send(msg []byte) {
	b.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(b.clients))
	for conn := range b.clients {
		conns = append(conns, conn)
	}
	b.mu.RUnlock()

	var failed []*websocket.Conn
	for _, conn := range conns {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			failed = append(failed, conn)
			conn.Close()
		}
	}

	if len(failed) > 0 {
		b.mu.Lock()
		for _, conn := range failed {
			delete(b.clients, conn)
		}
		b.mu.Unlock()
	}
}

// Close disconnects every client and stops the broadcasting goroutine.
func (b *Broadcaster) Close() error {
	close(b.done)
	b.wg.Wait()

	b.mu.Lock()
	for conn := range b.clients {
		conn.Close()
		delete(b.clients, conn)
	}
	b.mu.Unlock()

	return nil
}
