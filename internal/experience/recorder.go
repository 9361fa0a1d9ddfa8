package experience

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/rs/zerolog"
)

// EpisodeRecorder buffers one TurnRow per tick and writes each finished
// episode to its own parquet file under outputDir
type EpisodeRecorder struct {
	mu        sync.Mutex
	outputDir string
	info      game.EpisodeInfo
	rows      []TurnRow
	files     []string
	lastErr   error
	logger    zerolog.Logger
}

// NewEpisodeRecorder creates a recorder writing to outputDir
func NewEpisodeRecorder(outputDir string, logger zerolog.Logger) *EpisodeRecorder {
	return &EpisodeRecorder{
		outputDir: outputDir,
		logger:    logger.With().Str("component", "episode_recorder").Logger(),
	}
}

// OnEpisodeStart drops any unflushed rows and starts a new episode
func (r *EpisodeRecorder) OnEpisodeStart(info game.EpisodeInfo, initial game.Observation) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.rows) > 0 {
		r.logger.Warn().
			Str("game_id", r.info.GameID).
			Int("episode", r.info.Episode).
			Int("rows", len(r.rows)).
			Msg("Discarding unflushed episode")
	}
	r.info = info
	r.rows = r.rows[:0]
}

// OnStateTransition appends the pre-move snapshot of the tick
func (r *EpisodeRecorder) OnStateTransition(prev game.Observation, moves game.Moves, result game.StepResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := TurnRow{
		GameID:  r.info.GameID,
		Episode: int32(r.info.Episode),
		Tick:    int32(prev.Tick),
		Width:   int32(prev.Width),
		Height:  int32(prev.Height),
		Seed:    r.info.Seed,
		Reward:  int32(result.Reward),
		Done:    result.Done,
		Winner:  result.Observation.Winner.String(),
	}
	row.GrowthX, row.GrowthY = appleCoords(prev.GrowthApple)
	row.ShrinkX, row.ShrinkY = appleCoords(prev.ShrinkApple)

	for _, role := range core.Roles {
		row.Snakes = append(row.Snakes, snakeRow(role, prev.Body(role), moves.For(role)))
	}
	r.rows = append(r.rows, row)
}

// OnGameEnd writes the finished episode
func (r *EpisodeRecorder) OnGameEnd(final game.Observation) {
	if _, err := r.Flush(final.Winner); err != nil {
		r.logger.Error().Err(core.WrapTickError(final.Tick, "record", err)).Msg("Failed to write episode")
	}
}

// Flush writes the buffered rows for the current episode, stamping every
// snake's value from winner. An episode cut short by a tick limit is flushed
// with core.WinnerNone. Returns the written path, or "" when nothing was
// buffered.
func (r *EpisodeRecorder) Flush(winner core.Winner) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.rows) == 0 {
		return "", nil
	}

	for i := range r.rows {
		r.rows[i].Winner = winner.String()
		// Snakes are stored in core.Roles order.
		for j := range r.rows[i].Snakes {
			r.rows[i].Snakes[j].Value = outcomeValue(winner, core.Roles[j])
		}
	}

	name := fmt.Sprintf("%s_ep%04d.parquet", r.info.GameID, r.info.Episode)
	path := filepath.Join(r.outputDir, name)
	if err := WriteEpisodeParquet(path, r.rows); err != nil {
		r.lastErr = err
		return "", err
	}

	r.logger.Info().
		Str("path", path).
		Int("rows", len(r.rows)).
		Str("winner", winner.String()).
		Msg("Episode written")

	r.files = append(r.files, path)
	r.rows = r.rows[:0]
	return path, nil
}

// Files returns every path written so far
func (r *EpisodeRecorder) Files() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.files))
	copy(out, r.files)
	return out
}

// Err returns the last write error, if any
func (r *EpisodeRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

func appleCoords(a core.Apple) (int32, int32) {
	if !a.Present {
		return -1, -1
	}
	return int32(a.Cell.X), int32(a.Cell.Y)
}

func snakeRow(role core.Role, body []core.Cell, move core.Direction) SnakeRow {
	sr := SnakeRow{
		Role:  role.String(),
		BodyX: make([]int32, len(body)),
		BodyY: make([]int32, len(body)),
		Move:  int32(move.Index()),
	}
	for i, c := range body {
		sr.BodyX[i] = int32(c.X)
		sr.BodyY[i] = int32(c.Y)
	}
	return sr
}

// outcomeValue is the final result from role's perspective in [-1, 1]
func outcomeValue(winner core.Winner, role core.Role) float32 {
	switch winner {
	case core.WinnerFor(role):
		return 1
	case core.WinnerFor(role.Opponent()):
		return -1
	}
	return 0
}

// Tee fans every callback out to several collectors in order. Each
// collector receives its own deep copy, so one collector mutating its
// arguments is never seen by the next.
type Tee []game.ExperienceCollector

// OnEpisodeStart forwards the new episode to every collector
func (t Tee) OnEpisodeStart(info game.EpisodeInfo, initial game.Observation) {
	for _, c := range t {
		c.OnEpisodeStart(info, initial.Clone())
	}
}

// OnStateTransition forwards the tick to every collector
func (t Tee) OnStateTransition(prev game.Observation, moves game.Moves, result game.StepResult) {
	for _, c := range t {
		c.OnStateTransition(prev.Clone(), moves, result.Clone())
	}
}

// OnGameEnd forwards the final observation to every collector
func (t Tee) OnGameEnd(final game.Observation) {
	for _, c := range t {
		c.OnGameEnd(final.Clone())
	}
}
