package experience

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

const (
	turnSchema       = "snake_duel_turn_v1"
	experienceSchema = "snake_duel_experience_v1"
)

// ErrNoRows is returned when asked to write an empty file
var ErrNoRows = errors.New("no rows to write")

// TurnRow is a single (episode, tick) snapshot taken before the tick's moves
// were applied. Apple coordinates are -1 when the apple is absent.
//
// Move is the action index of each snake on this tick: 0=Up, 1=Down,
// 2=Left, 3=Right. Value is the final outcome from that snake's perspective.
type TurnRow struct {
	GameID  string `parquet:"game_id,dict"`
	Episode int32  `parquet:"episode"`
	Tick    int32  `parquet:"tick"`
	Width   int32  `parquet:"width"`
	Height  int32  `parquet:"height"`
	Seed    int64  `parquet:"seed"`

	GrowthX int32 `parquet:"growth_x"`
	GrowthY int32 `parquet:"growth_y"`
	ShrinkX int32 `parquet:"shrink_x"`
	ShrinkY int32 `parquet:"shrink_y"`

	Snakes []SnakeRow `parquet:"snakes"`

	Reward int32  `parquet:"reward"`
	Done   bool   `parquet:"done"`
	Winner string `parquet:"winner,dict"`
}

// SnakeRow is one snake inside a TurnRow
type SnakeRow struct {
	Role  string  `parquet:"role,dict"`
	BodyX []int32 `parquet:"body_x"`
	BodyY []int32 `parquet:"body_y"`
	Move  int32   `parquet:"move"`
	Value float32 `parquet:"value"`
}

// ExperienceRow is the on-disk form of an Experience
type ExperienceRow struct {
	ExperienceID string    `parquet:"experience_id"`
	GameID       string    `parquet:"game_id,dict"`
	Episode      int32     `parquet:"episode"`
	Role         string    `parquet:"role,dict"`
	Tick         int32     `parquet:"tick"`
	Shape        []int32   `parquet:"shape"`
	State        []float32 `parquet:"state"`
	Action       int32     `parquet:"action"`
	Reward       float32   `parquet:"reward"`
	NextState    []float32 `parquet:"next_state"`
	Done         bool      `parquet:"done"`
	ActionMask   []bool    `parquet:"action_mask"`
	CollectedAt  int64     `parquet:"collected_at_ms"`
}

// WriteEpisodeParquet writes rows to outPath through a temp file that is
// renamed into place once complete
func WriteEpisodeParquet(outPath string, rows []TurnRow) error {
	return writeParquetAtomic(outPath, rows, turnSchema)
}

// ReadEpisodeParquet reads back a file written by WriteEpisodeParquet
func ReadEpisodeParquet(path string) ([]TurnRow, error) {
	return readParquet[TurnRow](path)
}

// WriteExperiencesParquet writes collected experiences to outPath
func WriteExperiencesParquet(outPath string, exps []Experience) error {
	rows := make([]ExperienceRow, 0, len(exps))
	for _, exp := range exps {
		rows = append(rows, ExperienceRow{
			ExperienceID: exp.ExperienceID,
			GameID:       exp.GameID,
			Episode:      int32(exp.Episode),
			Role:         exp.Role.String(),
			Tick:         int32(exp.Tick),
			Shape:        exp.State.Shape,
			State:        exp.State.Data,
			Action:       exp.Action,
			Reward:       exp.Reward,
			NextState:    exp.NextState.Data,
			Done:         exp.Done,
			ActionMask:   exp.ActionMask,
			CollectedAt:  exp.CollectedAt.UnixMilli(),
		})
	}
	return writeParquetAtomic(outPath, rows, experienceSchema)
}

// ReadExperiencesParquet reads back a file written by WriteExperiencesParquet
func ReadExperiencesParquet(path string) ([]ExperienceRow, error) {
	return readParquet[ExperienceRow](path)
}

func writeParquetAtomic[T any](outPath string, rows []T, schema string) error {
	if len(rows) == 0 {
		return ErrNoRows
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	// Write to a temp file and rename atomically.
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", schema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func readParquet[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}

	reader := parquet.NewGenericReader[T](pf)
	defer reader.Close()

	out := make([]T, 0, reader.NumRows())
	buf := make([]T, 256)
	for {
		n, err := reader.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet %s: %w", path, err)
		}
	}
	return out, nil
}
