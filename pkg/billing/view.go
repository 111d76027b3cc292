package billing

import (
	"sync"
)

// View tracks which alerts the user has dismissed. Dismissal is
// client-side state only; it never suppresses a non-dismissible alert.
type View struct {
	mu        sync.Mutex
	dismissed map[string]struct{}
}

// NewView creates an empty view
func NewView() *View {
	return &View{dismissed: make(map[string]struct{})}
}

// Dismiss hides the alert with the given ID from future Visible calls
func (v *View) Dismiss(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dismissed[id] = struct{}{}
}

// Reset clears all dismissals, for organization switches
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dismissed = make(map[string]struct{})
}

// Visible filters out dismissed alerts. Non-dismissible alerts are always
// returned regardless of dismissal state.
func (v *View) Visible(alerts []Alert) []Alert {
	v.mu.Lock()
	defer v.mu.Unlock()

	visible := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if _, dismissed := v.dismissed[a.ID]; dismissed && a.Dismissible {
			continue
		}
		visible = append(visible, a)
	}
	return visible
}
