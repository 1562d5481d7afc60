package component

type MatchPhase int

const (
	PhaseWaiting MatchPhase = iota
	PhaseRoundStarting
	PhaseRoundPlaying
	PhaseRoundEnding
	PhaseMatchOver
	PhaseGameOver
)

func (p MatchPhase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseRoundStarting:
		return "round_starting"
	case PhaseRoundPlaying:
		return "round_playing"
	case PhaseRoundEnding:
		return "round_ending"
	case PhaseMatchOver:
		return "match_over"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Match is the round and match state. Entity fields are zero when unset.
type Match struct {
	ID    string
	Phase MatchPhase
	Round int

	RoundWinner uint64
	MatchWinner uint64

	Message  string
	GameOver bool

	RoundsToWin int
	StartDelay  float64
	EndDelay    float64
}

var MatchComponent = NewComponent[Match]()
