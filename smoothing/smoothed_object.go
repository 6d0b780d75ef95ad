package smoothing

import "github.com/google/uuid"

// SmoothedObject is an object with its own smoother and history of smoothed centers
type SmoothedObject struct {
	id           uuid.UUID
	smoother     BBoxSmoother
	currentBBox  BoundingBox
	track        []Point
	maxTrackLen  int
	noMatchTimes int
}

// NewSmoothedObject creates object for given identifier
func NewSmoothedObject(id uuid.UUID, smoother BBoxSmoother) *SmoothedObject {
	return &SmoothedObject{
		id:          id,
		smoother:    smoother,
		track:       make([]Point, 0, 150),
		maxTrackLen: 150,
	}
}

// GetID returns object's identifier
func (object *SmoothedObject) GetID() uuid.UUID {
	return object.id
}

// GetBBox returns latest smoothed bounding box
func (object *SmoothedObject) GetBBox() BoundingBox {
	return object.currentBBox
}

// GetCenter returns center of latest smoothed bounding box
func (object *SmoothedObject) GetCenter() Point {
	return object.currentBBox.Center()
}

// GetSmoother returns object's smoother
func (object *SmoothedObject) GetSmoother() BBoxSmoother {
	return object.smoother
}

// GetTrack returns object's track of smoothed centers. Be careful: this is not copy of track, but reference to it
func (object *SmoothedObject) GetTrack() []Point {
	return object.track
}

// GetMaxTrackLen returns object's max track length
func (object *SmoothedObject) GetMaxTrackLen() int {
	return object.maxTrackLen
}

// SetMaxTrackLen sets object's max track length
func (object *SmoothedObject) SetMaxTrackLen(newMaxTrackLen int) {
	object.maxTrackLen = newMaxTrackLen
	if newMaxTrackLen >= 0 && len(object.track) > newMaxTrackLen {
		object.track = object.track[len(object.track)-newMaxTrackLen:]
	}
}

// GetNoMatchTimes returns number of steps the object was not observed
func (object *SmoothedObject) GetNoMatchTimes() int {
	return object.noMatchTimes
}

// IncNoMatch increases object's no match times
func (object *SmoothedObject) IncNoMatch() {
	object.noMatchTimes++
}

// ResetNoMatch resets object's no match times
func (object *SmoothedObject) ResetNoMatch() {
	object.noMatchTimes = 0
}

// Update smooths new detection and appends its center to the track
func (object *SmoothedObject) Update(bbox BoundingBox, confidence float64) BoundingBox {
	object.currentBBox = object.smoother.Smooth(bbox, confidence)
	object.noMatchTimes = 0
	object.track = append(object.track, object.currentBBox.Center())
	if len(object.track) > object.maxTrackLen {
		object.track = object.track[1:]
	}
	return object.currentBBox
}

// Reset resets object's smoother and clears the track
func (object *SmoothedObject) Reset() {
	object.smoother.Reset()
	object.track = object.track[:0]
	object.noMatchTimes = 0
}
