package stylist

// Messages are the status lines shown while analyzing, one per progress
// bucket.
var Messages = []string{
	"Analyzing facial features...",
	"Detecting skin tone...",
	"Identifying undertones...",
	"Generating color palette...",
	"Matching style preferences...",
	"Curating outfit recommendations...",
	"Finalizing your personalized results...",
}

// Progress is one snapshot of the analysis simulation.
type Progress struct {
	Tick    int     `json:"tick"`
	Percent float64 `json:"percent"`
	Message string  `json:"message"`
	Done    bool    `json:"done"`
}

// Simulator is a pure progress stepper. It holds no timers; Task drives it.
type Simulator struct {
	step     float64
	messages []string
	ticks    int
}

// NewSimulator creates a simulator adding step percent per tick. A nil or
// empty messages slice uses Messages.
func NewSimulator(step float64, messages []string) *Simulator {
	if len(messages) == 0 {
		messages = Messages
	}
	return &Simulator{step: step, messages: messages}
}

// Current returns the state without advancing.
func (s *Simulator) Current() Progress {
	raw := float64(s.ticks) * s.step
	// ticks equals floor(raw/step); counting avoids float rounding at bucket edges.
	idx := min(s.ticks, len(s.messages)-1)
	return Progress{
		Tick:    s.ticks,
		Percent: min(raw, 100),
		Message: s.messages[idx],
		Done:    raw >= 100,
	}
}

// Step advances one tick. Stepping a finished simulator is a no-op.
func (s *Simulator) Step() Progress {
	if s.Current().Done {
		return s.Current()
	}
	s.ticks++
	return s.Current()
}

// Reset rewinds to zero.
func (s *Simulator) Reset() {
	s.ticks = 0
}
