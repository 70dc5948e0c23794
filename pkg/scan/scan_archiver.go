package scan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/utils/logger"
	"souschef/internal/utils/storage"
	"souschef/pkg/capture"
)

type (
	// Archiver stores the images of a finished capture session and records a
	// pending scan for later recognition.
	Archiver interface {
		ProcessorFor(userID, scanID string) capture.Processor
		GetScans(ctx context.Context, userID string) ([]domain.ScanRecord, error)
	}

	scanArchiver struct {
		s3    storage.AwsS3
		store domain.DocumentStore
		now   func() time.Time
	}
)

// NewArchiver builds an Archiver. With a nil s3 only the scan record is kept.
func NewArchiver(s3 storage.AwsS3, store domain.DocumentStore) Archiver {
	return &scanArchiver{s3: s3, store: store, now: time.Now}
}

func (a *scanArchiver) ProcessorFor(userID, scanID string) capture.Processor {
	return capture.ProcessorFunc(func(ctx context.Context, receipt *capture.Image, items []capture.Image) error {
		return a.archive(ctx, userID, scanID, receipt, items)
	})
}

func (a *scanArchiver) archive(ctx context.Context, userID, scanID string, receipt *capture.Image, items []capture.Image) error {
	record := domain.ScanRecord{
		ID:            scanID,
		UserID:        userID,
		ItemImageURLs: make([]string, 0, len(items)),
		Status:        domain.ScanStatusPending,
		CreatedAt:     a.now(),
	}

	folder := fmt.Sprintf("scans/%s/%s", userID, scanID)
	if receipt != nil {
		url, err := a.upload(ctx, folder, "receipt", *receipt)
		if err != nil {
			return err
		}
		record.ReceiptImageURL = url
	}
	for i, img := range items {
		url, err := a.upload(ctx, folder, fmt.Sprintf("item-%d", i+1), img)
		if err != nil {
			return err
		}
		if url != "" {
			record.ItemImageURLs = append(record.ItemImageURLs, url)
		}
	}

	if err := a.store.Put(ctx, domain.ScansCollection(userID), scanID, record); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("scan.archived",
		zap.String("scan_id", scanID),
		zap.Bool("has_receipt", receipt != nil),
		zap.Int("item_images", len(items)),
	)
	return nil
}

func (a *scanArchiver) upload(ctx context.Context, folder, name string, img capture.Image) (string, error) {
	if a.s3 == nil {
		return "", nil
	}
	key, err := a.s3.UploadFile(ctx, name, img.Data, folder, storage.AllowImage...)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return a.s3.GetPublicLinkKey(key), nil
}

func (a *scanArchiver) GetScans(ctx context.Context, userID string) ([]domain.ScanRecord, error) {
	docs, err := a.store.List(ctx, domain.ScansCollection(userID), 0)
	if err != nil {
		return nil, err
	}

	scans := make([]domain.ScanRecord, 0, len(docs))
	for _, doc := range docs {
		var record domain.ScanRecord
		if err := json.Unmarshal(doc.Data, &record); err != nil {
			return nil, fmt.Errorf("%w: decode scan %s: %v", domain.ErrPersistence, doc.ID, err)
		}
		scans = append(scans, record)
	}
	return scans, nil
}
