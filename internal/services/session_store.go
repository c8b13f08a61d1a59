package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"alfredoptarigan/applicant-portal/internal/apperror"
	"alfredoptarigan/applicant-portal/internal/models"
)

const sessionKeyPrefix = "portal:session:"

// SessionStore keeps sessions for a limited time after their last write.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

type memorySessionStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionStore keeps sessions in process memory. They do not survive restarts.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memorySessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, apperror.NotFound(fmt.Sprintf("session %s not found", id), nil)
	}

	// Stored as JSON so callers never share a *Session.
	var session models.Session
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, apperror.StorageError("failed to decode session", err)
	}
	return &session, nil
}

func (s *memorySessionStore) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return apperror.StorageError("failed to encode session", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.sweep(now)
	s.entries[session.ID] = memoryEntry{data: data, expiresAt: now.Add(s.ttl)}
	return nil
}

// sweep drops abandoned sessions. Callers hold s.mu.
func (s *memorySessionStore) sweep(now time.Time) {
	for id, entry := range s.entries {
		if now.After(entry.expiresAt) {
			delete(s.entries, id)
		}
	}
}

type redisSessionStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisSessionStore(client redis.UniversalClient, ttl time.Duration) SessionStore {
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

func (s *redisSessionStore) Get(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.NotFound(fmt.Sprintf("session %s not found", id), nil)
		}
		return nil, apperror.StorageError("failed to load session", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, apperror.StorageError("failed to decode session", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return apperror.StorageError("failed to encode session", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+session.ID, data, s.ttl).Err(); err != nil {
		return apperror.StorageError("failed to save session", err)
	}
	return nil
}
