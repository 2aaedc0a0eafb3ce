package game

type State int

const (
	StateRacing State = iota
	StateFinished
	StateDestroyed
	StateLeagueComplete
)

func (s State) String() string {
	switch s {
	case StateRacing:
		return "racing"
	case StateFinished:
		return "finished"
	case StateDestroyed:
		return "destroyed"
	case StateLeagueComplete:
		return "league complete"
	}
	return "unknown"
}
