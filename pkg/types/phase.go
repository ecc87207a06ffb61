package types

// Phase identifies how far a packaging run has progressed. Runs advance
// through the phases in order; a failure in any phase moves the run to
// PhaseFailed. Staging cleanup happens regardless of the final phase.
type Phase string

const (
	// PhaseInit is the starting phase before any work has happened
	PhaseInit Phase = "init"

	// PhaseMetadataRead means the mod's info.json has been read and validated
	PhaseMetadataRead Phase = "metadata_read"

	// PhaseSelected means the distribution list has been matched against the project
	PhaseSelected Phase = "selected"

	// PhaseStaged means all selected items have been copied into the staging area
	PhaseStaged Phase = "staged"

	// PhaseFiltered means excluded files have been removed from the staging area
	PhaseFiltered Phase = "filtered"

	// PhaseArchived means the release archive has been written
	PhaseArchived Phase = "archived"

	// PhaseDeployed means the archive has been moved to its destination
	PhaseDeployed Phase = "deployed"

	// PhaseCleanedUp means the staging area has been removed after a successful run
	PhaseCleanedUp Phase = "cleaned_up"

	// PhaseFailed means the run aborted; partial staging state is still cleaned up
	PhaseFailed Phase = "failed"
)

// phaseOrder is the successful path through a packaging run.
var phaseOrder = []Phase{
	PhaseInit,
	PhaseMetadataRead,
	PhaseSelected,
	PhaseStaged,
	PhaseFiltered,
	PhaseArchived,
	PhaseDeployed,
	PhaseCleanedUp,
}

// String returns the phase name.
func (p Phase) String() string {
	return string(p)
}

// Terminal reports whether the phase ends a run.
func (p Phase) Terminal() bool {
	return p == PhaseCleanedUp || p == PhaseFailed
}

// Next returns the phase that follows p on the successful path. The
// second return value is false when p is terminal or unknown.
func (p Phase) Next() (Phase, bool) {
	for i, phase := range phaseOrder {
		if phase == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1], true
		}
	}
	return p, false
}

// CanTransition reports whether moving from p to next is legal. A run
// may always fail from a non-terminal phase; otherwise only the next
// phase in order is allowed.
func (p Phase) CanTransition(next Phase) bool {
	if p.Terminal() {
		return false
	}
	if next == PhaseFailed {
		return true
	}
	succ, ok := p.Next()
	return ok && next == succ
}
