package protocol

// Event represents a wire event name. The vocabulary is shared with the
// browser client, hence the namespaced string form.
type Event string

const (
	CreateGame   Event = "game:create"
	CreatedGame  Event = "game:created"
	JoinGame     Event = "game:join"
	JoinedGame   Event = "game:joined"
	PlayerJoined Event = "player:joined"
	StartGame    Event = "game:start"
	StartedGame  Event = "game:started"
	FinishedGame Event = "game:finished"
	GameInfo     Event = "game:info"
	MoveGame     Event = "game:move"
	DrawCard     Event = "game:cardDraw"

	PlayerCurrent    Event = "player:current"
	PlayerCards      Event = "player:cards"
	PlayerCount      Event = "player:count"
	CardCurrentSuite Event = "card:currentSuite"
	CardDirection    Event = "card:direction"
	CardLeft         Event = "card:left"
	CardTop          Event = "card:top"

	Error Event = "error"
)
