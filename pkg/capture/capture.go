// Package capture sequences the receipt and item photo steps of a scan.
package capture

import (
	"context"
	"errors"
	"time"
)

type Step int

const (
	StepReceiptPrompt Step = iota
	StepReceiptScan
	StepItemPrompt
	StepItemScan
	StepFinished
	StepDismissed
)

var stepNames = map[Step]string{
	StepReceiptPrompt: "receiptPrompt",
	StepReceiptScan:   "receiptScan",
	StepItemPrompt:    "itemPrompt",
	StepItemScan:      "itemScan",
	StepFinished:      "finished",
	StepDismissed:     "dismissed",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether the session has been discarded.
func (s Step) Terminal() bool {
	return s == StepFinished || s == StepDismissed
}

func (s Step) scanning() bool {
	return s == StepReceiptScan || s == StepItemScan
}

type EventKind string

const (
	EventStartReceiptScan   EventKind = "startReceiptScan"
	EventSkipReceipt        EventKind = "skipReceipt"
	EventCaptureReceipt     EventKind = "captureReceipt"
	EventCancelReceiptScan  EventKind = "cancelReceiptScan"
	EventStartItemScan      EventKind = "startItemScan"
	EventSkipItems          EventKind = "skipItems"
	EventCaptureItem        EventKind = "captureItem"
	EventScanMore           EventKind = "scanMore"
	EventFinish             EventKind = "finish"
	EventBackFromItemScan   EventKind = "backFromItemScan"
	EventBackFromItemPrompt EventKind = "backFromItemPrompt"
)

var (
	ErrInvalidTransition = errors.New("event not allowed in current step")
	ErrSessionClosed     = errors.New("capture session already closed")
	ErrMissingImage      = errors.New("capture event without image")
	ErrStaleCapture      = errors.New("capture completed after the step was left")
)

type (
	Image struct {
		Data        []byte
		ContentType string
		CapturedAt  time.Time
	}

	Event struct {
		Kind  EventKind
		Image *Image
	}

	// Handle identifies one acquisition of the capture device.
	Handle string

	Camera interface {
		Acquire(ctx context.Context) (Handle, error)
		// Capture blocks until the device produces one image or ctx ends.
		Capture(ctx context.Context, h Handle) (Image, error)
		Release(h Handle) error
	}

	// Processor receives the images of a finished session.
	Processor interface {
		Process(ctx context.Context, receipt *Image, items []Image) error
	}

	ProcessorFunc func(ctx context.Context, receipt *Image, items []Image) error

	// State is a copy of the session at one point in time.
	State struct {
		Step                      Step
		ReceiptImage              *Image
		ItemImages                []Image
		AwaitingMoreItemsDecision bool
	}
)

func (f ProcessorFunc) Process(ctx context.Context, receipt *Image, items []Image) error {
	return f(ctx, receipt, items)
}

func NewEvent(kind EventKind) Event {
	return Event{Kind: kind}
}

func CaptureReceipt(img Image) Event {
	return Event{Kind: EventCaptureReceipt, Image: &img}
}

func CaptureItem(img Image) Event {
	return Event{Kind: EventCaptureItem, Image: &img}
}
