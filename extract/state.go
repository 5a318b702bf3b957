package extract

// State is a step of a pipeline run.
type State int

// Pipeline states. A run moves forward through them in order; Aborted marks
// the point where the data path stopped, and EngineStopped follows it
// whenever an engine was started.
const (
	StateIdle State = iota
	StateEngineStarted
	StateFetched
	StateExtracted
	StateWritten
	StateEngineStopped
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEngineStarted:
		return "engine_started"
	case StateFetched:
		return "fetched"
	case StateExtracted:
		return "extracted"
	case StateWritten:
		return "written"
	case StateEngineStopped:
		return "engine_stopped"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}
