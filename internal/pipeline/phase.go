package pipeline

// Phase names the run's position in the two-phase state machine. The barrier
// between PhaseAssets and PhaseRender is hard: no render call may happen
// until every question's assets exist.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseAssets  Phase = "assets"
	PhaseRender  Phase = "render"
	PhaseDone    Phase = "done"
	PhaseFailed  Phase = "failed"
)

func (p Phase) String() string {
	return string(p)
}
