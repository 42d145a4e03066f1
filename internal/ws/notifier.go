package ws

import (
	"encoding/json"

	"github.com/huynhmanh2003/RAJI-BE/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier fans one event out to every audience member with a live
// connection. Recipients without a presence entry are skipped silently;
// a failed send to one recipient never affects the others and nothing is
// ever reported back to the mutation that triggered the event.
type Notifier struct {
	logger   *zap.Logger
	registry *Registry
	hub      *Hub
}

func NewNotifier(logger *zap.Logger, registry *Registry, hub *Hub) *Notifier {
	return &Notifier{
		logger:   logger,
		registry: registry,
		hub:      hub,
	}
}

func (n *Notifier) Notify(audience []uuid.UUID, event model.NotificationEvent) {
	for _, userID := range audience {
		connID, ok := n.registry.Lookup(userID)
		if !ok {
			continue
		}

		ev := event
		ev.UserID = userID.String()
		payload, err := json.Marshal(ev)
		if err != nil {
			n.logger.Sugar().Errorf("failed to marshal notification for user(%s): %s", userID.String(), err.Error())
			continue
		}

		go func(userID uuid.UUID, connID string, payload []byte) {
			if !n.hub.Send(connID, payload) {
				n.logger.Sugar().Debugf("dropped notification for user(%s): connection(%s) unreachable", userID.String(), connID)
			}
		}(userID, connID, payload)
	}
}
