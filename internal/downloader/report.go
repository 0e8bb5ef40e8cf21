package downloader

// State names the orchestrator's position in its run lifecycle. States only
// move forward; Aborted is reachable from anywhere once the stop flag is
// observed.
type State string

const (
	StateIdle       State = "idle"
	StateAcquiring  State = "acquiring_target"
	StateProcessing State = "processing"
	StateReclaiming State = "reclaiming_batch"
	StateFinished   State = "finished"
	StateAborted    State = "aborted"
)

// Report summarizes one run. It is returned for both complete and
// partially-completed (cancelled) runs; everything marked stays marked, so
// the next run resumes from LastKey's successor via the ledger.
type Report struct {
	Total       int    `json:"total"`
	AlreadyDone int    `json:"already_done"`
	Processed   int    `json:"processed"`
	Skipped     int    `json:"skipped"`
	Cancelled   bool   `json:"cancelled"`
	LastKey     string `json:"last_key,omitempty"`
	State       State  `json:"state"`
}
