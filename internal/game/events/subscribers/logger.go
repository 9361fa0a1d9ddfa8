package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // nil logs every event type
	devMode         bool            // log the full event as JSON
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.logLevel)
	if ls.logLevel == zerolog.NoLevel {
		logEvent = eventLogger.Info()
	}

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("width", e.Width).
			Int("height", e.Height).
			Bool("seeded", e.Seeded).
			Int64("seed", e.Seed).
			Str("growth_apple", e.GrowthApple.String()).
			Str("shrink_apple", e.ShrinkApple.String())

	case *events.GameEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Dur("duration", e.Duration).
			Int("final_tick", e.FinalTick).
			Int("player_len", e.PlayerLen).
			Int("ai_len", e.AILen)

	case *events.TickCompletedEvent:
		logEvent.
			Int("tick", e.Tick).
			Str("player_move", e.PlayerMove.String()).
			Str("ai_move", e.AIMove.String()).
			Int("player_len", e.PlayerLen).
			Int("ai_len", e.AILen).
			Int("reward", e.Reward).
			Dur("process_time", e.ProcessedTime)

	case *events.AppleEatenEvent:
		logEvent.
			Int("tick", e.Metadata.Tick).
			Str("role", e.Role.String()).
			Str("apple", e.Kind.String()).
			Int("x", e.At.X).
			Int("y", e.At.Y).
			Str("respawned_at", e.RespawnedAt.String())

	case *events.SnakeShrunkEvent:
		logEvent.
			Int("tick", e.Metadata.Tick).
			Str("role", e.Role.String()).
			Int("new_length", e.NewLength)

	case *events.SnakeDiedEvent:
		logEvent.
			Int("tick", e.Metadata.Tick).
			Str("role", e.Role.String()).
			Str("cause", e.Cause).
			Int("x", e.At.X).
			Int("y", e.At.Y)

	case *events.PhaseChangedEvent:
		logEvent.
			Int("tick", e.Metadata.Tick).
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}
