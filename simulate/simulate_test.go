package simulate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker/engine"
	"tracker/models"
)

type cycle struct {
	outcomes []models.Outcome
	pos      int
}

func (c *cycle) Next() models.Outcome {
	o := c.outcomes[c.pos%len(c.outcomes)]
	c.pos++
	return o
}

func newCycle(outcomes ...models.Outcome) *cycle {
	return &cycle{outcomes: outcomes}
}

func TestRun_TakeProfitAfterStreak(t *testing.T) {
	// observe, two ladder wins, three streak wins past take-profit, then a loss
	src := newCycle(
		models.OutcomeRed, models.OutcomeRed, models.OutcomeRed,
		models.OutcomeRed, models.OutcomeRed, models.OutcomeRed,
		models.OutcomeBlack,
	)

	result, err := Run(context.Background(), Config{Settings: engine.DefaultSettings(), Games: 3}, src)

	require.NoError(t, err)
	assert.Equal(t, 3, result.Games)
	assert.Equal(t, 3, result.TakeProfits)
	assert.Zero(t, result.StopLosses)
	assert.Zero(t, result.Unfinished)
	assert.Equal(t, 21, result.Rounds)
	assert.Equal(t, 90.0, result.NetPnL)
	assert.Equal(t, 30.0, result.BestGame)
	assert.Equal(t, 30.0, result.WorstGame)
	assert.Equal(t, 100.0, result.TakeProfitRate())
	assert.Equal(t, 30.0, result.AveragePnL())
	assert.Equal(t, 7.0, result.AverageRounds())
}

func TestRun_AbandonsEndlessGames(t *testing.T) {
	src := newCycle(models.OutcomeRed)

	result, err := Run(context.Background(), Config{Settings: engine.DefaultSettings(), Games: 2, MaxRounds: 20}, src)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Unfinished)
	assert.Equal(t, 40, result.Rounds)
	assert.Zero(t, result.Finished())
	assert.Zero(t, result.NetPnL)
	assert.Zero(t, result.AveragePnL())
}

func TestRun_SeededTable(t *testing.T) {
	settings := engine.DefaultSettings()
	cfg := Config{Settings: settings, Games: 200}

	first, err := Run(context.Background(), cfg, NewTableSource(settings.GameType, 42))
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg, NewTableSource(settings.GameType, 42))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 200, first.Games)
	assert.Equal(t, first.Games, first.TakeProfits+first.StopLosses+first.Unfinished)
	assert.LessOrEqual(t, first.SeriesBGames, first.StopLosses)
	assert.GreaterOrEqual(t, first.BestGame, first.WorstGame)
}

func TestRun_InvalidConfig(t *testing.T) {
	src := newCycle(models.OutcomeRed)

	_, err := Run(context.Background(), Config{Settings: engine.DefaultSettings()}, src)
	assert.Error(t, err)

	bad := engine.DefaultSettings()
	bad.Series = "C"
	_, err = Run(context.Background(), Config{Settings: bad, Games: 1}, src)
	assert.ErrorIs(t, err, engine.ErrInvalidSetting)
}

func TestRun_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, Config{Settings: engine.DefaultSettings(), Games: 5}, newCycle(models.OutcomeRed))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, result.Games)
}

func TestTableSource(t *testing.T) {
	t.Run("roulette odds", func(t *testing.T) {
		src := NewTableSource(models.GameTypeRoulette, 7)
		counts := map[models.Outcome]int{}
		for i := 0; i < 37000; i++ {
			counts[src.Next()]++
		}

		assert.InDelta(t, 1000, counts[models.OutcomeGreen], 200)
		assert.InDelta(t, 18000, counts[models.OutcomeRed], 600)
		assert.InDelta(t, 18000, counts[models.OutcomeBlack], 600)
	})

	t.Run("baccarat outcomes only", func(t *testing.T) {
		src := NewTableSource(models.GameTypeBaccarat, 7)
		for i := 0; i < 1000; i++ {
			assert.NoError(t, engine.ValidateOutcome(src.Next(), models.GameTypeBaccarat))
		}
	})
}
