package capture

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type session struct {
	step         Step
	receiptImage *Image
	itemImages   []Image
	awaiting     bool
}

// Controller drives one capture session from the receipt prompt to Finish.
// The camera is held only while the session sits in a scan step.
type Controller struct {
	mu        sync.Mutex
	camera    Camera
	processor Processor
	log       *zap.Logger

	session *session
	closed  Step

	handle  Handle
	holding bool
	// epoch changes every time the camera is released, so a capture that
	// completes afterwards can be recognised as stale.
	epoch uint64

	observers []func(State)
}

func NewController(camera Camera, processor Processor, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if processor == nil {
		processor = ProcessorFunc(func(context.Context, *Image, []Image) error { return nil })
	}
	return &Controller{
		camera:    camera,
		processor: processor,
		log:       log,
		session:   &session{step: StepReceiptPrompt},
	}
}

// Subscribe registers fn to receive the state after every change.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Transition applies one UI event. Events that do not fit the current step
// return ErrInvalidTransition and change nothing.
func (c *Controller) Transition(ctx context.Context, ev Event) (State, error) {
	c.mu.Lock()
	return c.applyAndUnlock(ctx, ev)
}

func (c *Controller) applyAndUnlock(ctx context.Context, ev Event) (State, error) {
	finished, err := c.applyLocked(ctx, ev)
	state := c.snapshotLocked()
	observers := c.observers
	c.mu.Unlock()

	if err != nil {
		return state, err
	}
	notify(observers, state)

	if finished != nil {
		return state, c.process(ctx, finished)
	}
	return state, nil
}

// Capture asks the camera for one image in the current scan step and applies
// it. The lock is not held while waiting, so the user can still cancel; an
// image that arrives after the step was left is dropped with ErrStaleCapture.
func (c *Controller) Capture(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.session == nil {
		state := c.snapshotLocked()
		c.mu.Unlock()
		return state, ErrSessionClosed
	}
	step := c.session.step
	if !step.scanning() || c.session.awaiting || !c.holding {
		state := c.snapshotLocked()
		c.mu.Unlock()
		return state, ErrInvalidTransition
	}
	handle, epoch := c.handle, c.epoch
	c.mu.Unlock()

	img, err := c.camera.Capture(ctx, handle)
	if err != nil {
		return c.State(), fmt.Errorf("capture image: %w", err)
	}

	c.mu.Lock()
	if c.session == nil || c.epoch != epoch {
		state := c.snapshotLocked()
		c.mu.Unlock()
		c.log.Debug("capture.stale_image_dropped", zap.Stringer("step", step))
		return state, ErrStaleCapture
	}

	ev := CaptureItem(img)
	if step == StepReceiptScan {
		ev = CaptureReceipt(img)
	}
	return c.applyAndUnlock(ctx, ev)
}

// Dismiss discards the session without processing and releases the camera.
func (c *Controller) Dismiss() State {
	c.mu.Lock()
	if c.session != nil {
		c.releaseLocked()
		c.session = nil
		c.closed = StepDismissed
	}
	state := c.snapshotLocked()
	observers := c.observers
	c.mu.Unlock()

	notify(observers, state)
	return state
}

// applyLocked returns the final session when ev finishes it.
func (c *Controller) applyLocked(ctx context.Context, ev Event) (*session, error) {
	s := c.session
	if s == nil {
		return nil, ErrSessionClosed
	}

	switch s.step {
	case StepReceiptPrompt:
		switch ev.Kind {
		case EventStartReceiptScan:
			if err := c.acquireLocked(ctx); err != nil {
				return nil, err
			}
			s.step = StepReceiptScan
			return nil, nil
		case EventSkipReceipt:
			s.step = StepItemPrompt
			return nil, nil
		}

	case StepReceiptScan:
		switch ev.Kind {
		case EventCaptureReceipt:
			if ev.Image == nil {
				return nil, ErrMissingImage
			}
			img := *ev.Image
			s.receiptImage = &img
			c.releaseLocked()
			s.step = StepItemPrompt
			return nil, nil
		case EventCancelReceiptScan:
			c.releaseLocked()
			s.step = StepReceiptPrompt
			return nil, nil
		}

	case StepItemPrompt:
		switch ev.Kind {
		case EventStartItemScan:
			if err := c.acquireLocked(ctx); err != nil {
				return nil, err
			}
			s.step = StepItemScan
			return nil, nil
		case EventSkipItems:
			return c.finishLocked(), nil
		case EventBackFromItemPrompt:
			s.step = StepReceiptPrompt
			return nil, nil
		}

	case StepItemScan:
		if s.awaiting {
			switch ev.Kind {
			case EventScanMore:
				if err := c.acquireLocked(ctx); err != nil {
					return nil, err
				}
				s.awaiting = false
				return nil, nil
			case EventFinish:
				return c.finishLocked(), nil
			}
			break
		}
		switch ev.Kind {
		case EventCaptureItem:
			if ev.Image == nil {
				return nil, ErrMissingImage
			}
			s.itemImages = append(s.itemImages, *ev.Image)
			c.releaseLocked()
			s.awaiting = true
			return nil, nil
		case EventBackFromItemScan:
			c.releaseLocked()
			s.step = StepItemPrompt
			return nil, nil
		}
	}

	return nil, fmt.Errorf("%w: %s during %s", ErrInvalidTransition, ev.Kind, s.step)
}

func (c *Controller) finishLocked() *session {
	s := c.session
	c.releaseLocked()
	c.session = nil
	c.closed = StepFinished
	return s
}

func (c *Controller) process(ctx context.Context, s *session) error {
	c.log.Info("capture.session_finished",
		zap.Bool("has_receipt", s.receiptImage != nil),
		zap.Int("item_images", len(s.itemImages)),
	)
	items := s.itemImages
	if items == nil {
		items = []Image{}
	}
	if err := c.processor.Process(ctx, s.receiptImage, items); err != nil {
		return fmt.Errorf("process captured images: %w", err)
	}
	return nil
}

func (c *Controller) acquireLocked(ctx context.Context) error {
	if c.holding {
		return nil
	}
	h, err := c.camera.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire camera: %w", err)
	}
	c.handle = h
	c.holding = true
	return nil
}

func (c *Controller) releaseLocked() {
	if !c.holding {
		return
	}
	if err := c.camera.Release(c.handle); err != nil {
		c.log.Warn("capture.release_failed", zap.Error(err))
	}
	c.handle = ""
	c.holding = false
	c.epoch++
}

func (c *Controller) snapshotLocked() State {
	s := c.session
	if s == nil {
		return State{Step: c.closed}
	}

	state := State{
		Step:                      s.step,
		AwaitingMoreItemsDecision: s.awaiting,
	}
	if s.receiptImage != nil {
		img := *s.receiptImage
		state.ReceiptImage = &img
	}
	if len(s.itemImages) > 0 {
		state.ItemImages = append([]Image(nil), s.itemImages...)
	}
	return state
}

func notify(observers []func(State), state State) {
	for _, fn := range observers {
		fn(state)
	}
}
