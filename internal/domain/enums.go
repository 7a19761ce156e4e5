package domain

// Phase is a named stage in a project's fixed lifecycle enumeration.
type Phase string

const (
	PhasePlanning Phase = "planning"
	PhaseProduct  Phase = "product"
	PhaseControl  Phase = "control"
	PhaseFinal    Phase = "final"

	PhaseMeetings      Phase = "meetings"
	PhaseDevelopment   Phase = "development"
	PhaseTesting       Phase = "testing"
	PhaseDocumentation Phase = "documentation"
	PhaseClosed        Phase = "closed"
)

// Variant selects which phase enumeration a project follows.
type Variant string

const (
	VariantStandard Variant = "standard"
	VariantVSVL     Variant = "vsvl"
)

var variantPhases = map[Variant][]Phase{
	VariantStandard: {PhasePlanning, PhaseProduct, PhaseControl, PhaseFinal},
	VariantVSVL:     {PhaseMeetings, PhasePlanning, PhaseDevelopment, PhaseTesting, PhaseDocumentation, PhaseClosed},
}

// Phases returns the ordered phase enumeration for the variant.
// Unknown variants fall back to the standard enumeration.
func (v Variant) Phases() []Phase {
	if phases, ok := variantPhases[v]; ok {
		return phases
	}
	return variantPhases[VariantStandard]
}

// FirstPhase returns the first phase of the variant's enumeration.
func (v Variant) FirstPhase() Phase {
	return v.Phases()[0]
}

// PhaseIndex returns the position of p in the variant's enumeration,
// or -1 if p is not a member.
func (v Variant) PhaseIndex(p Phase) int {
	for i, ph := range v.Phases() {
		if ph == p {
			return i
		}
	}
	return -1
}

// NextPhase returns the phase following p. The second return value is
// false when p is the last phase or not a member of the enumeration.
func (v Variant) NextPhase(p Phase) (Phase, bool) {
	phases := v.Phases()
	idx := v.PhaseIndex(p)
	if idx < 0 || idx >= len(phases)-1 {
		return "", false
	}
	return phases[idx+1], true
}

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
)

// ChainRole is the semantic identity of a task within the fixed
// dependency chain. Empty means the task is not a chain member.
type ChainRole string

const (
	RoleNone     ChainRole = ""
	RoleKickoff  ChainRole = "kickoff"
	RoleTemplate ChainRole = "template"
	RolePricing  ChainRole = "pricing"
	RoleAssets   ChainRole = "assets"
	RoleLayout   ChainRole = "layout"
	RoleContent  ChainRole = "content"
	RoleReview   ChainRole = "review"
	RoleApproval ChainRole = "approval"
	RoleHandover ChainRole = "handover"
	RoleArchive  ChainRole = "archive"
)
