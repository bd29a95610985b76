package loop

// State names the loop's position in the turn cycle.
type State string

const (
	// StateWaitingForTrigger blocks on the manual trigger.
	StateWaitingForTrigger State = "waiting_for_trigger"
	// StateRecording runs the capture session until its policy stops it.
	StateRecording State = "recording"
	// StateTranscribing runs the engine on the finalized buffer.
	StateTranscribing State = "transcribing"
	// StateDisplaying prints the turn's transcript.
	StateDisplaying State = "displaying"
	// StateShuttingDown is terminal and reachable from every state.
	StateShuttingDown State = "shutting_down"
)
