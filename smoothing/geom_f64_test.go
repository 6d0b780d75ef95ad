package smoothing

import (
	"image"
	"math"
	"testing"
)

const (
	eps = 0.00001
)

func TestEuclideanDistance(t *testing.T) {
	p1 := Point{X: 341, Y: 264}
	p2 := Point{X: 421, Y: 427}
	correnctAnswer := 181.57367
	answer := euclideanDistance(p1, p2)
	if math.Abs(answer-correnctAnswer) > eps {
		t.Errorf("Wrong answer: %v, correct answer: %v", answer, correnctAnswer)
	}
}

func TestBoundingBoxCenterSize(t *testing.T) {
	bbox := NewBoundingBox(100, 120, 200, 180)
	center := bbox.Center()
	if center != (Point{X: 150, Y: 150}) {
		t.Errorf("Wrong center: %v, expected: %v", center, Point{X: 150, Y: 150})
	}
	size := bbox.Size()
	if size != (Size{Width: 100, Height: 60}) {
		t.Errorf("Wrong size: %v, expected: %v", size, Size{Width: 100, Height: 60})
	}
	restored := NewBoundingBoxFromCenter(center, size)
	if restored != bbox {
		t.Errorf("Wrong restored bbox: %v, expected: %v", restored, bbox)
	}
}

func TestBoundingBoxConversions(t *testing.T) {
	bbox := NewBoundingBoxFrom(image.Rect(10, 20, 40, 60))
	if bbox != NewBoundingBox(10, 20, 40, 60) {
		t.Errorf("Wrong bbox from image.Rectangle: %v", bbox)
	}
	rect := bbox.Rect()
	if rect != NewRect(10, 20, 30, 40) {
		t.Errorf("Wrong rectangle: %v", rect)
	}
	if rect.BoundingBox() != bbox {
		t.Errorf("Wrong bbox from rectangle: %v, expected: %v", rect.BoundingBox(), bbox)
	}
	rounded := NewBoundingBox(10.4, 19.6, 40.5, 59.49).Round()
	if rounded != NewBoundingBox(10, 20, 41, 59) {
		t.Errorf("Wrong rounding: %v", rounded)
	}
	if NewBoundingBox(10.4, 19.6, 40.5, 59.49).ImageRect() != image.Rect(10, 20, 41, 59) {
		t.Errorf("Wrong image.Rectangle: %v", NewBoundingBox(10.4, 19.6, 40.5, 59.49).ImageRect())
	}
}

func TestIoU(t *testing.T) {
	r := NewRect(0, 0, 10, 10)
	if math.Abs(IoU(r, r)-1.0) > eps {
		t.Errorf("IoU of the same rectangle should be 1, got %v", IoU(r, r))
	}
	half := NewRect(5, 0, 10, 10)
	correctAnswer := 50.0 / 150.0
	if math.Abs(IoU(r, half)-correctAnswer) > eps {
		t.Errorf("Wrong IoU: %v, correct answer: %v", IoU(r, half), correctAnswer)
	}
	if IoU(r, NewRect(20, 20, 5, 5)) != 0 {
		t.Errorf("IoU of disjoint rectangles should be 0")
	}
}
