package notification

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"doorsteps/internal/domain"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	writeWait  = 10 * time.Second
	redialWait = 30 * time.Second
)

// Stream subscribes to the backend's live notification feed and folds
// pushed notifications into the store, so the inbox updates between
// polls.
type Stream struct {
	url   func() string
	store *Store
	log   *zap.Logger
}

func NewStream(url func() string, store *Store, log *zap.Logger) *Stream {
	return &Stream{url: url, store: store, log: log}
}

// Run dials and reads until ctx is cancelled, redialing after
// connection loss. Intended to run in its own goroutine.
func (s *Stream) Run(ctx context.Context) {
	for {
		if err := s.listen(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn("notification stream disconnected", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(redialWait):
		}
	}
}

func (s *Stream) listen(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, s.url(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			case <-ctx.Done():
				_ = conn.Close()
				return
			case <-done:
				return
			}
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var n domain.Notification
		if err := json.Unmarshal(raw, &n); err != nil {
			s.log.Warn("unreadable stream payload", zap.Error(err))
			continue
		}
		s.store.Ingest(n)
	}
}
