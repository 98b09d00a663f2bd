package redis

import (
	"context"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/advsearch/internal/db"
)

// HGet returns a single hash field. Missing key or field yields db.ErrKeyNotFound.
func (s *Store) HGet(ctx context.Context, key, field string) (string, error) {
	cmd := s.b().Hget().Key(key).Field(field).Build()
	v, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", db.ErrKeyNotFound
		}
		return "", &db.Error{Op: db.OpHGet, Err: err}
	}
	return v, nil
}

// HGetAll returns all fields of a hash. A missing key yields an empty map.
func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	m, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return nil, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	return m, nil
}
