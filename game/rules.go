package game

import "github.com/okekefrancis/crazy8s/deck"

// MoveError is a validation failure carrying the wire error code emitted to
// the offending participant.
type MoveError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func (e *MoveError) Error() string {
	return e.Message
}

var (
	ErrMismatchedSuites   = &MoveError{"Mismatching suites in played cards", "card_mismatch"}
	ErrMissingSeven       = &MoveError{"Multiple cards played missing 7", "missing_7"}
	ErrSingleMismatch     = &MoveError{"Card doesn't match suite or value", "single_mismatch"}
	ErrMultiSuiteMismatch = &MoveError{"Some cards don't match current suite", "multi_suite_mismatch"}
	ErrMultiFirstMove     = &MoveError{"Can only play a single card on first move", "multi_first_move"}
	ErrGameNotStarted     = &MoveError{"Game not on play", "game_not_started"}
)

// ruleResult is the outcome of one rule: stop halts the chain with overall
// success, a non-nil err halts it with that failure, otherwise the chain
// continues.
type ruleResult struct {
	stop bool
	err  error
}

type rule func(currentSuite deck.Suite, currentValue deck.Value, played []deck.Card) ruleResult

// moveRules is the legality rule chain, evaluated strictly in order. The
// single-card rules short-circuit on an unambiguous card type; the multi-card
// rules accumulate constraints and only ever fall through on success.
var moveRules = []rule{
	validateEmpty,
	validateJoker,
	validateEight,
	validateSingleMatch,
	validateMultiFirstMove,
	validateMultiSameSuites,
	validateMultiMatchesCurrentSuite,
	validateMultiHasSeven,
}

// ValidateMove checks a proposed play against the game's current suite and
// value. A nil return means the move is accepted.
func ValidateMove(currentSuite deck.Suite, currentValue deck.Value, played []deck.Card) error {
	for _, r := range moveRules {
		res := r(currentSuite, currentValue, played)
		if res.stop {
			return nil
		}
		if res.err != nil {
			return res.err
		}
	}
	return nil
}

// An empty play is a pass; legality of passing is handled upstream.
func validateEmpty(_ deck.Suite, _ deck.Value, played []deck.Card) ruleResult {
	if len(played) == 0 {
		return ruleResult{stop: true}
	}
	return ruleResult{}
}

// A single joker can always be played.
func validateJoker(_ deck.Suite, _ deck.Value, played []deck.Card) ruleResult {
	if len(played) == 1 && played[0].Suite == deck.Joker {
		return ruleResult{stop: true}
	}
	return ruleResult{}
}

// A single eight is wild and can always be played.
func validateEight(_ deck.Suite, _ deck.Value, played []deck.Card) ruleResult {
	if len(played) == 1 && played[0].Value == "8" {
		return ruleResult{stop: true}
	}
	return ruleResult{}
}

// A single card must match the current suite or value, unless there is no
// current suite yet or the current suite is joker. Multi-card plays fall
// through to the multi rules.
func validateSingleMatch(currentSuite deck.Suite, currentValue deck.Value, played []deck.Card) ruleResult {
	if len(played) != 1 {
		return ruleResult{}
	}
	if currentSuite == "" || currentSuite == deck.Joker {
		return ruleResult{stop: true}
	}
	if played[0].Suite == currentSuite || played[0].Value == currentValue {
		return ruleResult{stop: true}
	}
	return ruleResult{err: ErrSingleMismatch}
}

// Multi-card plays are not allowed before the first card is on the table.
func validateMultiFirstMove(currentSuite deck.Suite, _ deck.Value, _ []deck.Card) ruleResult {
	if currentSuite == "" {
		return ruleResult{err: ErrMultiFirstMove}
	}
	return ruleResult{}
}

// All cards in a multi-card play must share one suite.
func validateMultiSameSuites(_ deck.Suite, _ deck.Value, played []deck.Card) ruleResult {
	for _, c := range played {
		if c.Suite != played[0].Suite {
			return ruleResult{err: ErrMismatchedSuites}
		}
	}
	return ruleResult{}
}

// The shared suite must match the current suite, unless the current suite
// is joker.
func validateMultiMatchesCurrentSuite(currentSuite deck.Suite, _ deck.Value, played []deck.Card) ruleResult {
	if currentSuite == deck.Joker {
		return ruleResult{}
	}
	if played[0].Suite == currentSuite {
		return ruleResult{}
	}
	return ruleResult{err: ErrMultiSuiteMismatch}
}

// A multi-card play must contain at least one seven.
func validateMultiHasSeven(_ deck.Suite, _ deck.Value, played []deck.Card) ruleResult {
	for _, c := range played {
		if c.Value == deck.DirectionChanger {
			return ruleResult{}
		}
	}
	return ruleResult{err: ErrMissingSeven}
}
