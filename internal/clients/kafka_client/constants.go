package kafka_client

import "time"

const (
	KAFKA_TOPIC_RAW_POSTS         = "raw-posts"         // extracted posts awaiting classification
	KAFKA_TOPIC_SENTIMENT_RESULTS = "sentiment-results" // batched classified records headed for storage
	KAFKA_TOPIC_SENTIMENT_ALERTS  = "sentiment-alerts"  // high severity anomaly alerts
)

const (
	BATCH_SIZE    = 50
	BATCH_TIMEOUT = 5 * time.Second
	MAX_RETRIES   = 5
	RETRY_DELAY   = 2 * time.Second
)
