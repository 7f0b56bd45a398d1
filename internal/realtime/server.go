package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Cmnplays/BACKEND-MEGA-PROJECT/internal/events"
)

type Server struct {
	hub      *Hub
	rdb      *redis.Client
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

// NewServer builds the websocket feed. allowedOrigin "*" or "" accepts any
// origin; otherwise the Origin header must match it exactly.
func NewServer(hub *Hub, rdb *redis.Client, allowedOrigin string, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	s := &Server{hub: hub, rdb: rdb, log: log}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if allowedOrigin == "" || allowedOrigin == "*" {
				return true
			}
			origin := r.Header.Get("Origin")
			return origin == "" || origin == allowedOrigin
		},
	}
	return s
}

// RunRedisSubscriber relays every message on the broadcast channel to the
// hub until ctx is cancelled.
func (s *Server) RunRedisSubscriber(ctx context.Context) {
	sub := s.rdb.Subscribe(ctx, events.Channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if !s.hub.Broadcast([]byte(msg.Payload)) {
				return
			}
		}
	}
}

func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("realtime: ws upgrade")
		return
	}

	client := newClient(s.hub, conn)

	welcome := map[string]any{
		"type": "welcome",
		"now":  time.Now().UTC().Format(time.RFC3339Nano),
	}
	if b, err := json.Marshal(welcome); err == nil {
		client.send <- b
	}
	s.hub.Register(client)

	go client.writePump()
	go client.readPump()
}
