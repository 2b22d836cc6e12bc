package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"scenery/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	keyPrefix       = "scenery:session:"
	failureCooldown = 60 * time.Second
)

// persistedSession is the JSON payload stored in Redis.
type persistedSession struct {
	ConversationID string             `json:"conversation_id"`
	Slots          models.Slots       `json:"slots"`
	Turns          []models.TurnEvent `json:"turns"`
	LastAction     models.Action      `json:"last_action,omitempty"`
	UpdatedAt      int64              `json:"updated_at"`
}

// RedisStore is the durable session store. Any Redis failure starts a timed
// cooldown during which the in-process cache serves reads and writes; a
// session store problem is never fatal to a turn.
type RedisStore struct {
	client   *redis.Client
	ttl      time.Duration
	maxTurns int
	logger   *zap.Logger
	now      func() time.Time

	mu            sync.Mutex
	disabledUntil time.Time
	fallback      *memoryCache
}

func NewRedisStore(client *redis.Client, ttl time.Duration, maxTurns int, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client:   client,
		ttl:      ttl,
		maxTurns: maxTurns,
		logger:   logger,
		now:      time.Now,
		fallback: newMemoryCache(),
	}
}

// SetClock fixes the store's clock for tests.
func (s *RedisStore) SetClock(now func() time.Time) { s.now = now }

func (s *RedisStore) Get(ctx context.Context, sessionID string) models.SessionContext {
	if s.cooldownActive() {
		return s.fromFallback(sessionID)
	}

	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if err == redis.Nil {
		return s.fromFallback(sessionID)
	}
	if err != nil {
		s.startCooldown()
		s.logger.Warn("session read failed, serving in-process cache",
			zap.String("session_id", sessionID), zap.Error(err))
		return s.fromFallback(sessionID)
	}

	var payload persistedSession
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		s.logger.Warn("session payload corrupt, starting fresh",
			zap.String("session_id", sessionID), zap.Error(err))
		return defaultContext(sessionID)
	}

	sctx := defaultContext(sessionID)
	if payload.ConversationID != "" {
		sctx.ConversationID = payload.ConversationID
	}
	sctx.Slots = payload.Slots
	sctx.Turns = payload.Turns
	sctx.LastAction = payload.LastAction
	sctx.MemoryEnabled = true
	return sctx
}

func (s *RedisStore) SaveTurn(ctx context.Context, turn Turn, existing models.SessionContext) models.SessionContext {
	now := s.now()
	nowTS := now.Unix()

	conversationID := existing.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	turns := append(existing.Turns,
		models.TurnEvent{Role: "user", Text: turn.UserText, Timestamp: nowTS},
		models.TurnEvent{Role: "assistant", Text: turn.AssistantText, Action: turn.Action, Timestamp: nowTS},
	)
	maxEvents := s.maxTurns * 2
	if maxEvents < 2 {
		maxEvents = 2
	}
	if len(turns) > maxEvents {
		turns = turns[len(turns)-maxEvents:]
	}

	out := models.SessionContext{
		SessionID:      turn.SessionID,
		ConversationID: conversationID,
		Slots:          turn.Slots.Merge(existing.Slots),
		Turns:          turns,
		LastAction:     turn.Action,
		MemoryEnabled:  true,
	}

	// Always mirror into the in-process cache so a Redis outage mid-session
	// keeps recent context.
	s.fallback.set(out, s.ttl, now)

	if s.cooldownActive() {
		return out
	}

	payload := persistedSession{
		ConversationID: out.ConversationID,
		Slots:          out.Slots,
		Turns:          out.Turns,
		LastAction:     out.LastAction,
		UpdatedAt:      nowTS,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("session payload marshal failed", zap.Error(err))
		return out
	}
	if err := s.client.Set(ctx, keyPrefix+turn.SessionID, b, s.ttl).Err(); err != nil {
		s.startCooldown()
		s.logger.Warn("session write failed, keeping in-process copy",
			zap.String("session_id", turn.SessionID), zap.Error(err))
	}
	return out
}

// PruneFallback drops expired in-process entries; called by the maintenance
// worker.
func (s *RedisStore) PruneFallback() int {
	return s.fallback.prune(s.now())
}

func (s *RedisStore) cooldownActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.disabledUntil)
}

func (s *RedisStore) startCooldown() {
	s.mu.Lock()
	s.disabledUntil = s.now().Add(failureCooldown)
	s.mu.Unlock()
}

func (s *RedisStore) fromFallback(sessionID string) models.SessionContext {
	if sctx, ok := s.fallback.get(sessionID, s.now()); ok {
		sctx.MemoryEnabled = true
		return sctx
	}
	return defaultContext(sessionID)
}

func defaultContext(sessionID string) models.SessionContext {
	return models.SessionContext{
		SessionID:      sessionID,
		ConversationID: uuid.NewString(),
		Slots:          models.Slots{},
		Turns:          nil,
		MemoryEnabled:  false,
	}
}
