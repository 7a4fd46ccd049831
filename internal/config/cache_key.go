package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// QuizHistoryKey returns the cache key for a user's quiz history.
func (r *CacheKeyStruct) QuizHistoryKey(userID string) string {
	return fmt.Sprintf("user:%s:history", userID)
}

// GenerationLockKey returns the key guarding concurrent generations for
// one user. Quiz creation has no idempotency key, so overlapping
// requests would duplicate records.
func (r *CacheKeyStruct) GenerationLockKey(userID string) string {
	return fmt.Sprintf("user:%s:generating", userID)
}

var CacheKey = NewCacheKeyStruct()
