package table

// CommandKind names an operation on the state.
type CommandKind string

const (
	CmdStartMatch      CommandKind = "start-match"
	CmdUpdateScore     CommandKind = "update-score"
	CmdResetMatch      CommandKind = "reset-match"
	CmdFinishMatch     CommandKind = "finish-match"
	CmdAddPlayer       CommandKind = "add-player"
	CmdUpdatePlayer    CommandKind = "update-player"
	CmdRemovePlayer    CommandKind = "remove-player"
	CmdToggleActive    CommandKind = "toggle-active"
	CmdMoveInQueue     CommandKind = "move-in-queue"
	CmdShuffleQueue    CommandKind = "shuffle-queue"
	CmdRemoveFromQueue CommandKind = "remove-from-queue"
	CmdResetAll        CommandKind = "reset-all"
	CmdResetStats      CommandKind = "reset-stats"
)

// Command is a single user action. Only the fields relevant to Kind are read.
type Command struct {
	Kind      CommandKind
	Mode      Mode
	Side      Side
	Amount    int
	AutoStart bool
	PlayerID  string
	Name      string
	Emoji     string
	Level     Level
	Index     int
	Direction Direction
}

// Apply runs cmd against s. Unknown kinds leave the state unchanged.
func (e *Engine) Apply(s State, cmd Command) Result {
	switch cmd.Kind {
	case CmdStartMatch:
		return e.StartMatch(s, cmd.Mode)
	case CmdUpdateScore:
		return e.UpdateScore(s, cmd.Side, cmd.Amount)
	case CmdResetMatch:
		return e.ResetActiveMatch(s)
	case CmdFinishMatch:
		return e.FinishMatch(s, cmd.AutoStart)
	case CmdAddPlayer:
		return e.AddPlayer(s, cmd.Name, cmd.Emoji, cmd.Level)
	case CmdUpdatePlayer:
		return e.UpdatePlayer(s, cmd.PlayerID, cmd.Name, cmd.Emoji, cmd.Level)
	case CmdRemovePlayer:
		return e.RemovePlayer(s, cmd.PlayerID)
	case CmdToggleActive:
		return e.ToggleActive(s, cmd.PlayerID)
	case CmdMoveInQueue:
		return e.MoveInQueue(s, cmd.Index, cmd.Direction)
	case CmdShuffleQueue:
		return e.ShuffleQueue(s)
	case CmdRemoveFromQueue:
		return e.RemoveFromQueue(s, cmd.PlayerID)
	case CmdResetAll:
		return e.ResetAll(s)
	case CmdResetStats:
		return e.ResetStats(s)
	default:
		return unchanged(s)
	}
}
