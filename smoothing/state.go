package smoothing

import "fmt"

// SmootherState is either Uninitialized or Tracking. No other implementations exist.
type SmootherState interface {
	isSmootherState()
	fmt.Stringer
}

// Uninitialized is the state before the first detection and after a reset
type Uninitialized struct{}

func (Uninitialized) isSmootherState() {}

func (Uninitialized) String() string {
	return "uninitialized"
}

// Tracking holds previous smoothed center and size
type Tracking struct {
	Center Point
	Size   Size
}

func (Tracking) isSmootherState() {}

func (state Tracking) String() string {
	return fmt.Sprintf("tracking center=(%.3f, %.3f) size=(%.3f, %.3f)", state.Center.X, state.Center.Y, state.Size.Width, state.Size.Height)
}

// BoundingBox reconstructs unrounded corners from the tracked center and size
func (state Tracking) BoundingBox() BoundingBox {
	return NewBoundingBoxFromCenter(state.Center, state.Size)
}
