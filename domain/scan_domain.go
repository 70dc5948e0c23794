package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessStartScan   = "scan session started"
	MessageSuccessScanEvent   = "scan session updated"
	MessageSuccessGetScan     = "scan session retrieved"
	MessageSuccessDismissScan = "scan session dismissed"
	MessageFailedStartScan    = "failed to start scan session"
	MessageFailedScanEvent    = "failed to update scan session"
	MessageFailedGetScan      = "failed to retrieve scan session"
	MessageFailedDismissScan  = "failed to dismiss scan session"
	MessageFailedUploadImage  = "failed to read captured image"

	ErrScanSessionNotFound = errors.New("scan session not found")
	ErrInvalidImageFormat  = errors.New("invalid image format")
)

const (
	ScanStatusPending = "Pending"
)

type (
	// ScanRecord is written once a capture session finishes. Image recognition
	// is not performed; the record stays Pending.
	ScanRecord struct {
		ID              string    `json:"id"`
		UserID          string    `json:"userId"`
		ReceiptImageURL string    `json:"receiptImageUrl,omitempty"`
		ItemImageURLs   []string  `json:"itemImageUrls"`
		Status          string    `json:"status"`
		CreatedAt       time.Time `json:"createdAt"`
	}

	ScanEventRequest struct {
		Event string `json:"event" validate:"required,oneof=startReceiptScan skipReceipt cancelReceiptScan startItemScan skipItems scanMore finish backFromItemScan backFromItemPrompt"`
	}

	ScanSessionResponse struct {
		SessionID                 string `json:"session_id"`
		Step                      string `json:"step"`
		HasReceipt                bool   `json:"has_receipt"`
		ItemCount                 int    `json:"item_count"`
		AwaitingMoreItemsDecision bool   `json:"awaiting_more_items_decision"`
		Finished                  bool   `json:"finished"`
	}
)
