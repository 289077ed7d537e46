package game

// NextPlayer computes the player whose turn follows the current player,
// moving in direction (+1 or -1) and hopping over skips players. Pure and
// deterministic; wraps correctly around either end of the player list.
func NextPlayer(players []Player, currentPlayerID string, direction, skips int) (Player, error) {
	current := -1
	for i, p := range players {
		if p.SocketID == currentPlayerID {
			current = i
			break
		}
	}
	if current == -1 {
		return Player{}, ErrPlayerNotFound
	}

	next := (current + direction + direction*skips) % len(players)
	if next < 0 {
		next += len(players)
	}

	return players[next], nil
}
