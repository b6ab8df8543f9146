package token

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix   = "token:v1:"
	subjectKeyPrefix = "token:subject:v1:"
)

// saveScript reserves the token key and rotates the subject's active token in
// one atomic step, deleting the superseded token key. Returns 0 when the
// token value is already taken.
const saveScript = `
	if redis.call("exists", KEYS[1]) == 1 then
		return 0
	end
	local old = redis.call("get", KEYS[2])
	if old then
		redis.call("del", ARGV[3] .. old)
	end
	redis.call("set", KEYS[1], ARGV[1])
	redis.call("set", KEYS[2], ARGV[2])
	return 1
`

type storedToken struct {
	SubjectID string    `json:"subject_id"`
	IssuedAt  time.Time `json:"issued_at"`
}

// RedisStore persists tokens in Redis. The reserve-and-rotate Lua script is
// the atomic check-and-insert that provides the uniqueness guarantee.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore builds a token store backed by Redis.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save reserves the token value and replaces the subject's active token. The
// script runs atomically, so concurrent saves for one subject serialize and
// exactly one token key survives per subject.
func (s *RedisStore) Save(ctx context.Context, tok IssuedToken) error {
	payload, err := json.Marshal(storedToken{SubjectID: tok.SubjectID, IssuedAt: tok.IssuedAt.UTC()})
	if err != nil {
		return err
	}

	keys := []string{tokenKeyPrefix + tok.Value, subjectKeyPrefix + tok.SubjectID}
	saved, err := s.client.Eval(ctx, saveScript, keys, string(payload), tok.Value, tokenKeyPrefix).Int()
	if err != nil {
		return err
	}
	if saved == 0 {
		return ErrConflict
	}
	return nil
}

// FindByToken fetches the token record matching the opaque value.
func (s *RedisStore) FindByToken(ctx context.Context, value string) (IssuedToken, error) {
	payload, err := s.client.Get(ctx, tokenKeyPrefix+value).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return IssuedToken{}, ErrNotFound
		}
		return IssuedToken{}, err
	}

	var stored storedToken
	if err := json.Unmarshal([]byte(payload), &stored); err != nil {
		return IssuedToken{}, err
	}
	return IssuedToken{SubjectID: stored.SubjectID, Value: value, IssuedAt: stored.IssuedAt}, nil
}
