package entities

// SessionPhase is the lifecycle state of a bundle selection session.
//
//	uninitialized -> loading -> ready | failed
//	ready | failed -> loading (product change or reload)
//
// Selection operations are only valid while ready.
type SessionPhase string

const (
	SessionPhaseUninitialized SessionPhase = "uninitialized"
	SessionPhaseLoading       SessionPhase = "loading"
	SessionPhaseReady         SessionPhase = "ready"
	SessionPhaseFailed        SessionPhase = "failed"
)

// SessionSnapshot is a read-only copy of a session used for rendering.
type SessionSnapshot struct {
	SessionID       string
	Phase           SessionPhase
	ProductID       string
	Catalog         *BundleConfig
	SelectedItemIDs []string
	SizeLimit       int
	Price           PriceCalculation
	CatalogError    string
}

func (s SessionSnapshot) IsFull() bool {
	return s.SizeLimit > 0 && len(s.SelectedItemIDs) >= s.SizeLimit
}

func (s SessionSnapshot) Remaining() int {
	if r := s.SizeLimit - len(s.SelectedItemIDs); r > 0 {
		return r
	}
	return 0
}

// CategorySelectionResult reports how a bulk category selection went.
//
// Partial is a success variant: fewer items were added than requested because
// the bundle ran out of room.
type CategorySelectionResult struct {
	Category  string
	Requested int
	Added     int
	Partial   bool
}
