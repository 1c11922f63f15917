package stylist

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrIncomplete is returned when analysis is requested before an image
	// and all four preferences are present.
	ErrIncomplete = errors.New("image and all preferences are required")
	// ErrInvalidOption is returned for a value outside a field's options.
	ErrInvalidOption = errors.New("invalid option")
	// ErrNoImage is returned when an empty image is offered.
	ErrNoImage = errors.New("no image")
	// ErrWrongPhase is returned when an operation is not valid in the
	// current phase.
	ErrWrongPhase = errors.New("operation not allowed in this phase")
)

// Transition describes one phase change. Overlay toggles report From == To.
type Transition struct {
	Session string
	From    Phase
	To      Phase
	Action  string
}

// Observer is notified of every transition.
type Observer interface {
	Transitioned(Transition)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Transition)

func (f ObserverFunc) Transitioned(t Transition) { f(t) }

// Wizard is the state container for one flow. It is not safe for
// concurrent use; its owner (a bubbletea model) serializes access.
type Wizard struct {
	session     string
	phase       Phase
	image       *CapturedImage
	preferences Preferences
	progress    Progress
	result      *AnalysisResult

	arOpen   bool
	chatOpen bool

	observer Observer
}

// NewWizard returns a wizard on the home phase.
func NewWizard() *Wizard {
	return &Wizard{session: uuid.NewString(), phase: PhaseHome}
}

// SetObserver installs o. Pass nil to remove.
func (w *Wizard) SetObserver(o Observer) {
	w.observer = o
}

func (w *Wizard) Session() string { return w.session }
func (w *Wizard) Phase() Phase { return w.phase }
func (w *Wizard) Image() *CapturedImage { return w.image }
func (w *Wizard) Preferences() Preferences { return w.preferences }
func (w *Wizard) Progress() Progress { return w.progress }
func (w *Wizard) Result() *AnalysisResult { return w.result }
func (w *Wizard) AROpen() bool { return w.arOpen }
func (w *Wizard) ChatOpen() bool { return w.chatOpen }
func (w *Wizard) Selected(f Field) string { return w.preferences.Get(f) }
func (w *Wizard) HasImage() bool { return !w.image.Empty() }
func (w *Wizard) InPhase(phases ...Phase) bool { return containsPhase(phases, w.phase) }

func containsPhase(phases []Phase, p Phase) bool {
	for _, candidate := range phases {
		if candidate == p {
			return true
		}
	}
	return false
}

func (w *Wizard) moveTo(to Phase, action string) {
	from := w.phase
	w.phase = to
	w.notify(from, to, action)
}

func (w *Wizard) notify(from, to Phase, action string) {
	if w.observer != nil {
		w.observer.Transitioned(Transition{Session: w.session, From: from, To: to, Action: action})
	}
}

// Start moves home to upload.
func (w *Wizard) Start() error {
	if w.phase != PhaseHome {
		return fmt.Errorf("%w: start from %s", ErrWrongPhase, w.phase)
	}
	w.chatOpen = false
	w.moveTo(PhaseUpload, "start")
	return nil
}

// GoHome returns from upload to home.
func (w *Wizard) GoHome() error {
	if w.phase != PhaseUpload {
		return fmt.Errorf("%w: home from %s", ErrWrongPhase, w.phase)
	}
	w.moveTo(PhaseHome, "home")
	return nil
}

// SetImage installs img, discarding any previous one, and advances to
// preferences.
func (w *Wizard) SetImage(img *CapturedImage) error {
	if img.Empty() {
		return ErrNoImage
	}
	if !w.InPhase(PhaseHome, PhaseUpload, PhasePreferences) {
		return fmt.Errorf("%w: set image in %s", ErrWrongPhase, w.phase)
	}
	w.image = img
	w.chatOpen = false
	w.moveTo(PhasePreferences, "image:"+string(img.Source))
	return nil
}

// Select sets one preference field, replacing its prior value.
func (w *Wizard) Select(f Field, value string) error {
	if w.phase != PhasePreferences {
		return fmt.Errorf("%w: select %s in %s", ErrWrongPhase, f, w.phase)
	}
	return w.preferences.Set(f, value)
}

func (w *Wizard) SelectGender(v string) error { return w.Select(FieldGender, v) }
func (w *Wizard) SelectStyle(v string) error { return w.Select(FieldStyle, v) }
func (w *Wizard) SelectOccasion(v string) error { return w.Select(FieldOccasion, v) }
func (w *Wizard) SelectBudget(v string) error { return w.Select(FieldBudget, v) }

// CanAnalyze is the guard for BeginAnalysis.
func (w *Wizard) CanAnalyze() bool {
	return w.HasImage() && w.preferences.Complete()
}

// BeginAnalysis moves preferences to analyzing.
func (w *Wizard) BeginAnalysis() error {
	if w.phase != PhasePreferences {
		return fmt.Errorf("%w: analyze from %s", ErrWrongPhase, w.phase)
	}
	if !w.CanAnalyze() {
		return ErrIncomplete
	}
	w.progress = Progress{Message: Messages[0]}
	w.moveTo(PhaseAnalyzing, "analyze")
	return nil
}

// ApplyProgress records a tick. Ignored outside analyzing.
func (w *Wizard) ApplyProgress(p Progress) bool {
	if w.phase != PhaseAnalyzing {
		return false
	}
	w.progress = p
	return true
}

// Complete installs result and moves analyzing to results. Only the first
// call in an analyzing phase has any effect.
func (w *Wizard) Complete(result AnalysisResult) bool {
	if w.phase != PhaseAnalyzing {
		return false
	}
	r := result.Clone()
	w.result = &r
	w.progress.Done = true
	w.moveTo(PhaseResults, "complete")
	return true
}

// Reset clears image, preferences, progress and result and returns to
// upload. It is "try another photo".
func (w *Wizard) Reset() {
	w.image = nil
	w.preferences = Preferences{}
	w.progress = Progress{}
	w.result = nil
	w.arOpen = false
	w.chatOpen = false
	w.moveTo(PhaseUpload, "reset")
}

// Back moves preferences to upload, keeping the selections.
func (w *Wizard) Back() error {
	if w.phase != PhasePreferences {
		return fmt.Errorf("%w: back from %s", ErrWrongPhase, w.phase)
	}
	w.moveTo(PhaseUpload, "back")
	return nil
}

// ToggleAR opens or closes the AR preview. Only available on results.
func (w *Wizard) ToggleAR() bool {
	if w.phase != PhaseResults {
		return false
	}
	w.arOpen = !w.arOpen
	w.notify(w.phase, w.phase, overlayAction("ar", w.arOpen))
	return true
}

// ToggleChat opens or closes the chat panel. Only offered on home.
func (w *Wizard) ToggleChat() bool {
	if w.phase != PhaseHome {
		return false
	}
	w.chatOpen = !w.chatOpen
	w.notify(w.phase, w.phase, overlayAction("chat", w.chatOpen))
	return true
}

func overlayAction(name string, open bool) string {
	if open {
		return name + ":open"
	}
	return name + ":close"
}
