package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/morris-backend/internal/entity"
)

var losingQuotes = []string{
	"It's only game, why you have to be mad? - Ilya Bryzgalov",
	"Maybe you should try checkers instead. - Magnus Carlsen",
	"First time?",
	"The restart option was there for a reason...",
	"I should not have done that.. I should NOT have done that! - You, just a minute ago",
	"They say you learn from your mistakes; you're about to become a genius.",
	"By design it's impossible to have a negative ELO rating. You might have to be an exception.",
	"I hate to break it to you, but you've been 'outsmarted' by a bunch of lines and circles.",
	"Congratulations! You've earned yourself a spot in the 'Hall of Lame'.",
	"It seems like you've taken a detour on the 'highway to victory'.",
	"Your gameplay was so 'brilliant', even the AI got confused.",
	"The good news is you're getting really good at setting up my winning moves. The bad news is you're still losing.",
	"Congratulations on your impeccable strategy of 'strategic incompetence'!",
	"You know what they say, losing is just winning in disguise. Keep up the good work!",
}

// EndGameMessage announces the result. A human beaten by the computer also gets a quote, picked with intn.
func EndGameMessage(game *entity.Game, intn func(int) int) string {
	if game.IsDraw() || game.Winner == entity.NoWinner {
		return fmt.Sprintf("The match ended in a draw after %d turns.", game.Turns)
	}

	message := fmt.Sprintf("Player %d has won this match!", game.Winner+1)

	if game.WinnerKind() == entity.BotKind && hasHuman(game) {
		message += "\n\n" + losingQuotes[intn(len(losingQuotes))]
	}

	return message
}

func hasHuman(game *entity.Game) bool {
	for _, player := range game.Players {
		if !player.IsBot() {
			return true
		}
	}

	return false
}
