package smoothing

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Observation is a detection of an already identified object.
// Identifiers come from the caller (e.g. from an upstream tracker), the bank never associates detections itself.
type Observation struct {
	ID         uuid.UUID
	BBox       BoundingBox
	Confidence float64
}

// SmootherBank keeps independent smoother per tracked object.
// It is not safe for concurrent use.
type SmootherBank struct {
	// Main storage
	Objects map[uuid.UUID]*SmoothedObject
	// Factory for smoothers of newly seen objects
	newSmoother func() BBoxSmoother
	// Max no match (max number of steps when object could not be found again). Default is 75
	maxNoMatch int
}

// NewSmootherBankDefault creates bank of fuzzy smoothers with DefaultConfig
func NewSmootherBankDefault() *SmootherBank {
	engine := NewInferenceEngineDefault()
	return NewSmootherBank(func() BBoxSmoother {
		return NewFuzzySmootherWithEngine(engine)
	}, 75)
}

// NewFuzzySmootherBank creates bank of fuzzy smoothers sharing single inference engine built from cfg
func NewFuzzySmootherBank(cfg Config, maxNoMatch int) (*SmootherBank, error) {
	engine, err := NewInferenceEngine(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "Can't create smoother bank")
	}
	return NewSmootherBank(func() BBoxSmoother {
		return NewFuzzySmootherWithEngine(engine)
	}, maxNoMatch), nil
}

// NewSmootherBank creates bank with custom smoother factory
func NewSmootherBank(newSmoother func() BBoxSmoother, maxNoMatch int) *SmootherBank {
	return &SmootherBank{
		Objects:     make(map[uuid.UUID]*SmoothedObject),
		newSmoother: newSmoother,
		maxNoMatch:  maxNoMatch,
	}
}

// Smooth smooths detection of object with given id. Unknown id registers new object.
// No-match counters of other objects are not touched, use Step for frame-wise bookkeeping.
func (bank *SmootherBank) Smooth(id uuid.UUID, bbox BoundingBox, confidence float64) BoundingBox {
	object, ok := bank.Objects[id]
	if !ok {
		object = NewSmoothedObject(id, bank.newSmoother())
		bank.Objects[id] = object
	}
	return object.Update(bbox, confidence)
}

// Step processes all observations of a single frame.
// Objects absent in observations get their no-match counter increased and are removed
// once it exceeds maxNoMatch. Returns smoothed boxes keyed by object id.
func (bank *SmootherBank) Step(observations []Observation) (map[uuid.UUID]BoundingBox, error) {
	seen := make(map[uuid.UUID]struct{}, len(observations))
	for _, obs := range observations {
		if obs.ID == uuid.Nil {
			return nil, errors.Wrap(ErrNilID, "Can't step smoother bank")
		}
		if _, ok := seen[obs.ID]; ok {
			return nil, errors.Wrapf(ErrDuplicateID, "Can't step smoother bank with id %s", obs.ID.String())
		}
		seen[obs.ID] = struct{}{}
	}

	result := make(map[uuid.UUID]BoundingBox, len(observations))
	for _, obs := range observations {
		result[obs.ID] = bank.Smooth(obs.ID, obs.BBox, obs.Confidence)
	}

	// Clean up existing data
	for objectID, object := range bank.Objects {
		if _, ok := seen[objectID]; ok {
			continue
		}
		object.IncNoMatch()
		// Remove object if it was not found for a long time
		if object.GetNoMatchTimes() > bank.maxNoMatch {
			delete(bank.Objects, objectID)
		}
	}
	return result, nil
}

// Get returns object by id
func (bank *SmootherBank) Get(id uuid.UUID) (*SmoothedObject, bool) {
	object, ok := bank.Objects[id]
	return object, ok
}

// Reset resets smoother of the object. Returns false if object is unknown.
func (bank *SmootherBank) Reset(id uuid.UUID) bool {
	object, ok := bank.Objects[id]
	if !ok {
		return false
	}
	object.Reset()
	return true
}

// ResetAll resets every smoother, objects stay registered
func (bank *SmootherBank) ResetAll() {
	for _, object := range bank.Objects {
		object.Reset()
	}
}

// Remove forgets the object
func (bank *SmootherBank) Remove(id uuid.UUID) {
	delete(bank.Objects, id)
}

// Len returns number of registered objects
func (bank *SmootherBank) Len() int {
	return len(bank.Objects)
}
