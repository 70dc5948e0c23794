package capture

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrCameraBusy     = errors.New("camera already acquired")
	ErrNotAcquired    = errors.New("camera not acquired by this handle")
	ErrCameraReleased = errors.New("camera released while waiting for an image")
	ErrSlotFull       = errors.New("an image is already waiting to be captured")
)

// SlotCamera is a Camera fed from outside, for example by an upload handler.
// Acquire opens a one-image slot, Deliver fills it and Capture waits on it.
type SlotCamera struct {
	mu     sync.Mutex
	active Handle
	slot   chan Image
}

var _ Camera = (*SlotCamera)(nil)

func NewSlotCamera() *SlotCamera {
	return &SlotCamera{}
}

func (c *SlotCamera) Acquire(ctx context.Context) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != "" {
		return "", ErrCameraBusy
	}
	c.active = Handle(uuid.NewString())
	c.slot = make(chan Image, 1)
	return c.active, nil
}

func (c *SlotCamera) Capture(ctx context.Context, h Handle) (Image, error) {
	c.mu.Lock()
	if h == "" || h != c.active {
		c.mu.Unlock()
		return Image{}, ErrNotAcquired
	}
	slot := c.slot
	c.mu.Unlock()

	select {
	case img, ok := <-slot:
		if !ok {
			return Image{}, ErrCameraReleased
		}
		return img, nil
	case <-ctx.Done():
		return Image{}, ctx.Err()
	}
}

func (c *SlotCamera) Release(h Handle) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h == "" || h != c.active {
		return ErrNotAcquired
	}
	close(c.slot)
	c.slot = nil
	c.active = ""
	return nil
}

// Deliver hands an image to the current acquisition.
func (c *SlotCamera) Deliver(img Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active == "" {
		return ErrNotAcquired
	}
	select {
	case c.slot <- img:
		return nil
	default:
		return ErrSlotFull
	}
}

// Acquired reports whether some step currently holds the camera.
func (c *SlotCamera) Acquired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active != ""
}
