package errors

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"
	// ConfigError represents an invalid or incomplete configuration.
	ConfigError ErrorCode = "config_error"

	// UpstreamFetchError represents a failure while calling or decoding the upstream ticker API.
	UpstreamFetchError ErrorCode = "upstream_fetch_error"
	// StoreError represents a failure while resetting, writing or reading the ticker store.
	StoreError ErrorCode = "store_error"
	// PipelineError represents a failed fetch-and-store run as seen by its caller.
	PipelineError ErrorCode = "pipeline_error"
	// SyncInProgressError represents a sync rejected because another instance holds the sync lock.
	SyncInProgressError ErrorCode = "sync_in_progress"
	// PublishError represents a failure while publishing a sync event.
	PublishError ErrorCode = "publish_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetNXError represents an error when setting a value in Redis with SetNX.
	RedisSetNXError ErrorCode = "redis_setnx_error"
	// RedisDelError represents an error when deleting a value from Redis.
	RedisDelError ErrorCode = "redis_del_error"
)
