package common

const (
	RedisStreamDigestTasks = "digest.task.execution"

	RedisStreamGroup    = "digest-group"
	RedisStreamConsumer = "digest-consumer"
)
