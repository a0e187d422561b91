package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/entitystore/pkg/container"
	"github.com/aretw0/entitystore/pkg/domain"
	"github.com/aretw0/entitystore/pkg/entity"
)

// allPaths is the subscription key for clients that watch every collection.
const allPaths = ""

// Event is one SSE message.
type Event struct {
	ID   string
	Data string
}

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{} // path -> set of channels
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan Event]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe(path string) (<-chan Event, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan Event, 10)
	if _, ok := sm.subscribers[path]; !ok {
		sm.subscribers[path] = make(map[chan Event]struct{})
	}
	sm.subscribers[path][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[path]; ok {
			if _, ok := subs[ch]; !ok {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, path)
			}
		}
	}
}

// Broadcast sends ev to the subscribers of path and to those watching every path.
func (sm *StreamManager) Broadcast(path string, ev Event) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "path", path, "payload_size", len(ev.Data))

	for _, key := range []string{path, allPaths} {
		for ch := range sm.subscribers[key] {
			select {
			case ch <- ev:
			default:
				// Drop message if channel is full (slow client)
				sm.logger.Warn("SSE: Client buffer full, dropping message", "path", path, "event_id", ev.ID)
			}
		}
	}
}

// pump turns container changes into collection diffs until ctx is done.
func (s *Server) pump(ctx context.Context, changes <-chan container.Change, cancel func()) {
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			diff := diffOf(change)
			if diff == nil {
				continue
			}
			data, err := json.Marshal(diff)
			if err != nil {
				s.logger.Error("SSE: Diff encode failed", "path", change.Path, "err", err)
				continue
			}
			s.Streams.Broadcast(change.Path, Event{ID: change.ID, Data: string(data)})
		}
	}
}

func diffOf(change container.Change) *domain.CollectionDiff {
	after, ok := change.After.(domain.Viewer)
	if !ok {
		return nil
	}
	newView := after.View()
	var oldView *domain.View
	if before, ok := change.Before.(domain.Viewer); ok {
		v := before.View()
		oldView = &v
	}
	return domain.Diff(change.Path, oldView, &newView)
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	path := r.URL.Query().Get("path")
	var snapshot *domain.CollectionDiff
	if path != "" {
		v, ok := entity.ViewAt(s.Host.State(), path)
		if !ok {
			writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", domain.ErrPathNotFound, path))
			return
		}
		snapshot = domain.Diff(path, nil, &v)
	}

	ch, cancel := s.Streams.Subscribe(path)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s.logger.Info("SSE: Subscribing to collection updates", "path", path)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if snapshot != nil {
		if data, err := json.Marshal(snapshot); err == nil {
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
		}
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE Client Disconnected", "path", path)
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "id: %s\ndata: %s\n\n", ev.ID, ev.Data)
			flusher.Flush()
		}
	}
}
