package topics

const (
	// Odds raspadas da exchange
	LayOddsScraped = "lay_odds_scraped"

	// Avaliação de apostas
	BetSubmitted  = "bet_submitted"
	ValuebetFound = "valuebet_found"

	// DLQs
	BetSubmittedDLQ = "bet_submitted_dlq"

	// Canal Redis Pub/Sub entre o odds-processor e o WS do odds-service.
	// Default de REDIS_PUBSUB_CHANNEL; os dois lados leem da config.
	ChannelLayOddsBroadcast = "lay_odds_broadcast"
)
