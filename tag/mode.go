package tag

//go:generate stringer -type=Mode -trimprefix=Mode

// Mode is the command state of the running application.
//
//	Idle --enter write mode--> WriteArmed --block write--> WriteArmed
//	any  --other write-------> JumpRequested (terminal)
//
// Only a power cycle leaves WriteArmed.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeWriteArmed
	ModeJumpRequested
)

// next returns the mode after outcome o.
func (m Mode) next(o Outcome) Mode {
	switch {
	case m == ModeJumpRequested:
		return m
	case o.Kind == KindWriteArmed:
		return ModeWriteArmed
	case o.Kind == KindJumpRequested:
		return ModeJumpRequested
	default:
		return m
	}
}
