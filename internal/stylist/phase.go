// Package stylist is the wizard state machine shared by the studio and
// browse front-ends. It has no UI dependencies: views render a Wizard and
// translate key presses into its operations.
package stylist

// Phase is the wizard's current stage.
type Phase int

const (
	PhaseHome Phase = iota
	PhaseUpload
	PhasePreferences
	PhaseAnalyzing
	PhaseResults
)

var phaseNames = [...]string{"home", "upload", "preferences", "analyzing", "results"}

func (p Phase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// ParsePhase maps a phase name back to its value.
func ParsePhase(s string) (Phase, bool) {
	for i, name := range phaseNames {
		if name == s {
			return Phase(i), true
		}
	}
	return PhaseHome, false
}
