package usecase

import "time"

const (
	// ScheduleCacheTTL bounds how long a computed schedule is served from
	// cache. Recording a payment invalidates the entry eagerly; the TTL is a
	// backstop for writers that bypass the API.
	ScheduleCacheTTL = 1 * time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
