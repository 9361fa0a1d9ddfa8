package game

// EpisodeInfo identifies an episode to experience collectors
type EpisodeInfo struct {
	GameID  string
	Episode int
	Seed    int64
	Seeded  bool
	Width   int
	Height  int
}

// ExperienceCollector is an interface for collecting experiences during gameplay
type ExperienceCollector interface {
	// OnEpisodeStart is called after every reset with the initial observation
	OnEpisodeStart(info EpisodeInfo, initial Observation)

	// OnStateTransition is called after each tick
	OnStateTransition(prev Observation, moves Moves, result StepResult)

	// OnGameEnd is called once when the game ends
	OnGameEnd(final Observation)
}
