package experience

import (
	"path/filepath"
	"testing"

	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/game/core"
	"github.com/mitchelldurbincs/SnakeDuelRL/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEpisodeRecorder_WritesFinishedEpisode(t *testing.T) {
	dir := t.TempDir()
	recorder := NewEpisodeRecorder(dir, testutil.NopLogger())
	e := newTestEngine(t, recorder)
	playShortEpisode(t, e)

	require.NoError(t, recorder.Err())
	files := recorder.Files()
	require.Len(t, files, 1)
	assert.Equal(t, filepath.Join(dir, "test-game-123_ep0001.parquet"), files[0])

	rows, err := ReadEpisodeParquet(files[0])
	require.NoError(t, err)
	require.Len(t, rows, 4)

	first := rows[0]
	assert.Equal(t, "test-game-123", first.GameID)
	assert.Equal(t, int32(1), first.Episode)
	assert.Equal(t, int32(0), first.Tick)
	assert.Equal(t, int32(16), first.Width)
	assert.Equal(t, int32(16), first.Height)
	assert.Equal(t, int64(42), first.Seed)
	require.Len(t, first.Snakes, 2)
	assert.Equal(t, "player", first.Snakes[0].Role)
	assert.Equal(t, []int32{8, 7, 6, 5}, first.Snakes[0].BodyX)
	assert.Equal(t, []int32{8, 8, 8, 8}, first.Snakes[0].BodyY)
	assert.Equal(t, []int32{4, 3, 2, 1}, first.Snakes[1].BodyX)
	assert.Equal(t, int32(3), first.Snakes[0].Move)
	assert.False(t, first.Done)
	assert.GreaterOrEqual(t, first.GrowthX, int32(0))

	for i, row := range rows {
		assert.Equal(t, int32(i), row.Tick)
		assert.Equal(t, "ai", row.Winner)
		assert.Equal(t, float32(-1), row.Snakes[0].Value)
		assert.Equal(t, float32(1), row.Snakes[1].Value)
	}

	last := rows[3]
	assert.True(t, last.Done)
	assert.Equal(t, int32(-1), last.Reward)
	assert.Equal(t, int32(2), last.Snakes[0].Move)
}

func TestEpisodeRecorder_FlushTruncatedEpisode(t *testing.T) {
	dir := t.TempDir()
	recorder := NewEpisodeRecorder(dir, testutil.NopLogger())
	e := newTestEngine(t, recorder)

	path, err := recorder.Flush(core.WinnerNone)
	require.NoError(t, err)
	assert.Empty(t, path, "nothing buffered yet")

	for i := 0; i < 2; i++ {
		_, err := e.Step(core.Right, core.Right)
		require.NoError(t, err)
	}

	path, err = recorder.Flush(core.WinnerNone)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	rows, err := ReadEpisodeParquet(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "none", row.Winner)
		assert.Equal(t, float32(0), row.Snakes[0].Value)
		assert.Equal(t, float32(0), row.Snakes[1].Value)
	}

	// The next episode gets its own file.
	e.Reset()
	playShortEpisode(t, e)
	files := recorder.Files()
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "test-game-123_ep0002.parquet"), files[1])
}

func TestEpisodeRecorder_AbsentApplesStoredAsMinusOne(t *testing.T) {
	x, y := appleCoords(core.NoApple)
	assert.Equal(t, int32(-1), x)
	assert.Equal(t, int32(-1), y)

	x, y = appleCoords(core.AppleAt(core.NewCell(3, 9)))
	assert.Equal(t, int32(3), x)
	assert.Equal(t, int32(9), y)
}

func TestTee_FansOut(t *testing.T) {
	dir := t.TempDir()
	collector := NewSimpleCollector(100, nil, testutil.NopLogger())
	recorder := NewEpisodeRecorder(dir, testutil.NopLogger())
	e := newTestEngine(t, Tee{collector, recorder})
	playShortEpisode(t, e)

	assert.Equal(t, 8, collector.GetExperienceCount())
	require.Len(t, recorder.Files(), 1)
}

// scribbler overwrites every slice it is handed
type scribbler struct{}

func (scribbler) OnEpisodeStart(game.EpisodeInfo, game.Observation) {}
func (scribbler) OnStateTransition(prev game.Observation, _ game.Moves, result game.StepResult) {
	prev.Player[0] = core.NewCell(99, 99)
	result.Observation.AI[0] = core.NewCell(99, 99)
	result.Info.GrowthEaten[0] = core.RoleAI
	result.Info.ShrinkEaten[0] = core.RoleAI
}
func (scribbler) OnGameEnd(final game.Observation) { final.Player[0] = core.NewCell(99, 99) }

// lastTransition keeps what it receives
type lastTransition struct {
	prev   game.Observation
	result game.StepResult
	final  game.Observation
}

func (l *lastTransition) OnEpisodeStart(game.EpisodeInfo, game.Observation) {}
func (l *lastTransition) OnStateTransition(prev game.Observation, _ game.Moves, result game.StepResult) {
	l.prev, l.result = prev, result
}
func (l *lastTransition) OnGameEnd(final game.Observation) { l.final = final }

func TestTee_CollectorsGetIndependentCopies(t *testing.T) {
	obs := game.Observation{
		Player: testutil.Cells(3, 3, 2, 3),
		AI:     testutil.Cells(7, 7, 6, 7),
		Width:  10,
		Height: 10,
	}
	result := game.StepResult{
		Observation: obs.Clone(),
		Info: game.StepInfo{
			GrowthEaten: []core.Role{core.RolePlayer},
			ShrinkEaten: []core.Role{core.RolePlayer},
		},
	}

	last := &lastTransition{}
	tee := Tee{scribbler{}, last}
	tee.OnStateTransition(obs, game.Moves{Player: core.Right, AI: core.Left}, result)
	tee.OnGameEnd(obs)

	assert.Equal(t, core.NewCell(3, 3), last.prev.Player[0])
	assert.Equal(t, core.NewCell(7, 7), last.result.Observation.AI[0])
	assert.Equal(t, []core.Role{core.RolePlayer}, last.result.Info.GrowthEaten)
	assert.Equal(t, []core.Role{core.RolePlayer}, last.result.Info.ShrinkEaten)
	assert.Equal(t, core.NewCell(3, 3), last.final.Player[0])

	// The caller's values are untouched as well.
	assert.Equal(t, core.NewCell(3, 3), obs.Player[0])
	assert.Equal(t, core.RolePlayer, result.Info.GrowthEaten[0])
}

func TestWriteExperiencesParquet_RoundTrip(t *testing.T) {
	collector := NewSimpleCollector(100, nil, testutil.NopLogger())
	e := newTestEngine(t, collector)
	playShortEpisode(t, e)
	exps := collector.GetExperiences()

	path := filepath.Join(t.TempDir(), "nested", "experiences.parquet")
	require.NoError(t, WriteExperiencesParquet(path, exps))

	rows, err := ReadExperiencesParquet(path)
	require.NoError(t, err)
	require.Len(t, rows, len(exps))
	for i, row := range rows {
		assert.Equal(t, exps[i].ExperienceID, row.ExperienceID)
		assert.Equal(t, exps[i].Role.String(), row.Role)
		assert.Equal(t, exps[i].Action, row.Action)
		assert.Equal(t, exps[i].Reward, row.Reward)
		assert.Equal(t, exps[i].State.Data, row.State)
		assert.Equal(t, exps[i].ActionMask, row.ActionMask)
	}
}

func TestWriteEpisodeParquet_NoRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	assert.ErrorIs(t, WriteEpisodeParquet(path, nil), ErrNoRows)
	assert.NoFileExists(t, path)
}

func TestReadEpisodeParquet_MissingFile(t *testing.T) {
	_, err := ReadEpisodeParquet(filepath.Join(t.TempDir(), "missing.parquet"))
	assert.Error(t, err)
}
