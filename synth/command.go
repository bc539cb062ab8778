package synth

// commandKind discriminates the Command variants.
type commandKind int

const (
	commandPlay commandKind = iota
	commandStop
)

// Command instructs the synth to start or stop sounding a tone pair.
// Commands are created by the dialing side and consumed at most once
// by the render side; ownership transfers on send.
type Command struct {
	kind commandKind
	high float64
	low  float64
}

// Play builds a command that tunes the two voices to the given
// frequencies and raises them to the audible level.
func Play(high, low float64) Command {
	return Command{kind: commandPlay, high: high, low: low}
}

// Stop builds a command that silences both voices. Frequencies are
// left untouched so the voices stay primed.
func Stop() Command {
	return Command{kind: commandStop}
}
