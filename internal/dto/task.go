package dto

// Digest task types published to the Redis stream.
const (
	TaskTypeDailyDigest  = "daily_digest"
	TaskTypeWeeklyDigest = "weekly_digest"
)

// DigestTask is the unit of work the scheduler enqueues and the consumer
// executes.
type DigestTask struct {
	Type   string `json:"type"`
	Ticker string `json:"ticker"`
}
