package morris

import (
	"log/slog"
)

// Notifier receives fire-and-forget updates for whatever renders the game.
type Notifier interface {
	HighlightPositions(positions []int)
	SelectionChanged(position int, selected bool)
	MillFormed(line MillLine)
	PreviousMove(positions []int)
	TokenRemoved(position int)
	TokenCounts(player, toPlace, removed int)
	HelperText(text string)
	TurnChanged(player int)
	GameOver(winner int)
}

type NopNotifier struct{}

func (NopNotifier) HighlightPositions([]int) {}
func (NopNotifier) SelectionChanged(int, bool) {}
func (NopNotifier) MillFormed(MillLine) {}
func (NopNotifier) PreviousMove([]int) {}
func (NopNotifier) TokenRemoved(int) {}
func (NopNotifier) TokenCounts(int, int, int) {}
func (NopNotifier) HelperText(string) {}
func (NopNotifier) TurnChanged(int) {}
func (NopNotifier) GameOver(int) {}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes every notification to the logger at debug level.
func NewLogNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{
		logger: logger.With("component", "notifier"),
	}
}

func (that *logNotifier) HighlightPositions(positions []int) {
	that.logger.Debug("highlight", "positions", positions)
}

func (that *logNotifier) SelectionChanged(position int, selected bool) {
	that.logger.Debug("selection changed", "position", position, "selected", selected)
}

func (that *logNotifier) MillFormed(line MillLine) {
	that.logger.Debug("mill formed", "line", []int(line))
}

func (that *logNotifier) PreviousMove(positions []int) {
	that.logger.Debug("previous move", "positions", positions)
}

func (that *logNotifier) TokenRemoved(position int) {
	that.logger.Debug("token removed", "position", position)
}

func (that *logNotifier) TokenCounts(player, toPlace, removed int) {
	that.logger.Debug("token counts", "player", player, "to_place", toPlace, "removed", removed)
}

func (that *logNotifier) HelperText(text string) {
	that.logger.Debug("helper text", "text", text)
}

func (that *logNotifier) TurnChanged(player int) {
	that.logger.Debug("turn changed", "player", player)
}

func (that *logNotifier) GameOver(winner int) {
	that.logger.Info("game over", "winner", winner)
}
