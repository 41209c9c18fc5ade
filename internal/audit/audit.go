package audit

import (
	"strconv"
	"time"

	"github.com/aminrz/transfer-registry/pkg/logger"
	"github.com/aminrz/transfer-registry/pkg/redis"
	"github.com/google/uuid"
)

const (
	ActionCreate         = "create"
	ActionUpdate         = "update"
	ActionDelete         = "delete"
	ActionToggleFavorite = "toggle_favorite"
)

// Event is one audit record: what happened to which entity, and when.
type Event struct {
	ID       string
	Entity   string
	Action   string
	EntityID int64
	At       time.Time
}

// Recorder records audit events. Mutating services call it after their
// storage work commits.
type Recorder interface {
	Record(entity, action string, entityID int64)
}

// Publisher appends audit events to a Redis stream. Publishing is best
// effort: a failure is logged and never surfaced to the request path.
type Publisher struct {
	adapter redis.RedisAdapter
	stream  string
	maxLen  int64
}

func NewPublisher(adapter redis.RedisAdapter, stream string, maxLen int64) *Publisher {
	return &Publisher{
		adapter: adapter,
		stream:  stream,
		maxLen:  maxLen,
	}
}

func (p *Publisher) Record(entity, action string, entityID int64) {
	values := map[string]interface{}{
		"event_id":  uuid.NewString(),
		"entity":    entity,
		"action":    action,
		"entity_id": entityID,
		"at":        time.Now().UTC().Format(time.RFC3339Nano),
	}

	if _, err := p.adapter.XAdd(p.stream, values); err != nil {
		logger.Warn("audit publish failed", "entity", entity, "action", action, "error", err)
		return
	}

	if p.maxLen > 0 {
		if err := p.adapter.XTrimApprox(p.stream, p.maxLen); err != nil {
			logger.Warn("audit stream trim failed", "stream", p.stream, "error", err)
		}
	}
}

func decodeEvent(msg redis.StreamMessage) Event {
	e := Event{}
	if v, ok := msg.Values["event_id"].(string); ok {
		e.ID = v
	}
	if v, ok := msg.Values["entity"].(string); ok {
		e.Entity = v
	}
	if v, ok := msg.Values["action"].(string); ok {
		e.Action = v
	}
	if v, ok := msg.Values["entity_id"].(string); ok {
		e.EntityID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := msg.Values["at"].(string); ok {
		e.At, _ = time.Parse(time.RFC3339Nano, v)
	}
	return e
}
