package scan

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"souschef/domain"
	"souschef/internal/utils/logger"
	"souschef/internal/utils/storage"
	"souschef/pkg/capture"
)

const DefaultIdleTimeout = 15 * time.Minute

type (
	ScanService interface {
		StartSession(ctx context.Context, userID string) (domain.ScanSessionResponse, error)
		SendEvent(ctx context.Context, userID, sessionID string, req domain.ScanEventRequest) (domain.ScanSessionResponse, error)
		CaptureImage(ctx context.Context, userID, sessionID string, data []byte) (domain.ScanSessionResponse, error)
		GetSession(ctx context.Context, userID, sessionID string) (domain.ScanSessionResponse, error)
		DismissSession(ctx context.Context, userID, sessionID string) (domain.ScanSessionResponse, error)
		GetScans(ctx context.Context, userID string) ([]domain.ScanRecord, error)
		ReapIdle(now time.Time) int
		ActiveSessions() int
		RunReaper(ctx context.Context, interval time.Duration)
	}

	liveSession struct {
		id         string
		userID     string
		camera     *capture.SlotCamera
		controller *capture.Controller
		lastSeen   time.Time
	}

	scanService struct {
		mu       sync.Mutex
		sessions map[string]*liveSession
		byUser   map[string]string

		archiver    Archiver
		idleTimeout time.Duration
		log         *zap.Logger
		now         func() time.Time
	}
)

// NewScanService keeps at most one live capture session per user. Sessions
// untouched for idleTimeout are dismissed by the reaper.
func NewScanService(archiver Archiver, idleTimeout time.Duration, log *zap.Logger) ScanService {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &scanService{
		sessions:    make(map[string]*liveSession),
		byUser:      make(map[string]string),
		archiver:    archiver,
		idleTimeout: idleTimeout,
		log:         log,
		now:         time.Now,
	}
}

// StartSession opens a new session, dismissing any the user still had open.
func (s *scanService) StartSession(ctx context.Context, userID string) (domain.ScanSessionResponse, error) {
	id := uuid.NewString()
	camera := capture.NewSlotCamera()
	ls := &liveSession{
		id:         id,
		userID:     userID,
		camera:     camera,
		controller: capture.NewController(camera, s.archiver.ProcessorFor(userID, id), s.log),
		lastSeen:   s.now(),
	}

	s.mu.Lock()
	previous := s.sessions[s.byUser[userID]]
	if previous != nil {
		s.removeLocked(previous)
	}
	s.sessions[id] = ls
	s.byUser[userID] = id
	s.mu.Unlock()

	if previous != nil {
		previous.controller.Dismiss()
		logger.FromContext(ctx).Info("scan.session_replaced", zap.String("session_id", previous.id))
	}
	return toResponse(id, ls.controller.State()), nil
}

func (s *scanService) SendEvent(ctx context.Context, userID, sessionID string, req domain.ScanEventRequest) (domain.ScanSessionResponse, error) {
	ls, err := s.lookup(userID, sessionID)
	if err != nil {
		return domain.ScanSessionResponse{}, err
	}

	state, err := ls.controller.Transition(ctx, capture.NewEvent(capture.EventKind(req.Event)))
	s.settle(ls, state)
	return toResponse(sessionID, state), err
}

// CaptureImage feeds an uploaded photo to the session's camera and waits for
// the controller to take it.
func (s *scanService) CaptureImage(ctx context.Context, userID, sessionID string, data []byte) (domain.ScanSessionResponse, error) {
	ls, err := s.lookup(userID, sessionID)
	if err != nil {
		return domain.ScanSessionResponse{}, err
	}

	mtype := mimetype.Detect(data)
	if len(data) == 0 || !mimetype.EqualsAny(mtype.String(), storage.AllowImage...) {
		return toResponse(sessionID, ls.controller.State()), domain.ErrInvalidImageFormat
	}

	img := capture.Image{Data: data, ContentType: mtype.String(), CapturedAt: s.now()}
	if err := ls.camera.Deliver(img); err != nil {
		if errors.Is(err, capture.ErrNotAcquired) {
			err = capture.ErrInvalidTransition
		}
		return toResponse(sessionID, ls.controller.State()), err
	}

	state, err := ls.controller.Capture(ctx)
	s.settle(ls, state)
	return toResponse(sessionID, state), err
}

func (s *scanService) GetSession(ctx context.Context, userID, sessionID string) (domain.ScanSessionResponse, error) {
	ls, err := s.lookup(userID, sessionID)
	if err != nil {
		return domain.ScanSessionResponse{}, err
	}
	return toResponse(sessionID, ls.controller.State()), nil
}

func (s *scanService) DismissSession(ctx context.Context, userID, sessionID string) (domain.ScanSessionResponse, error) {
	ls, err := s.lookup(userID, sessionID)
	if err != nil {
		return domain.ScanSessionResponse{}, err
	}

	state := ls.controller.Dismiss()
	s.settle(ls, state)
	return toResponse(sessionID, state), nil
}

func (s *scanService) GetScans(ctx context.Context, userID string) ([]domain.ScanRecord, error) {
	return s.archiver.GetScans(ctx, userID)
}

// ReapIdle dismisses sessions not touched since now minus the idle timeout
// and returns how many were dropped.
func (s *scanService) ReapIdle(now time.Time) int {
	cutoff := now.Add(-s.idleTimeout)

	s.mu.Lock()
	var idle []*liveSession
	for _, ls := range s.sessions {
		if ls.lastSeen.Before(cutoff) {
			idle = append(idle, ls)
			s.removeLocked(ls)
		}
	}
	s.mu.Unlock()

	for _, ls := range idle {
		ls.controller.Dismiss()
		s.log.Info("scan.session_reaped", zap.String("session_id", ls.id), zap.String("user_id", ls.userID))
	}
	return len(idle)
}

func (s *scanService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *scanService) RunReaper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case t := <-ticker.C:
			s.ReapIdle(t)
		}
	}
}

func (s *scanService) lookup(userID, sessionID string) (*liveSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ls, ok := s.sessions[sessionID]
	if !ok || ls.userID != userID {
		return nil, domain.ErrScanSessionNotFound
	}
	ls.lastSeen = s.now()
	return ls, nil
}

// settle forgets a session once it has reached a terminal step.
func (s *scanService) settle(ls *liveSession, state capture.State) {
	if !state.Step.Terminal() {
		return
	}
	s.mu.Lock()
	if s.sessions[ls.id] == ls {
		s.removeLocked(ls)
	}
	s.mu.Unlock()
}

func (s *scanService) removeLocked(ls *liveSession) {
	delete(s.sessions, ls.id)
	if s.byUser[ls.userID] == ls.id {
		delete(s.byUser, ls.userID)
	}
}

func toResponse(sessionID string, state capture.State) domain.ScanSessionResponse {
	return domain.ScanSessionResponse{
		SessionID:                 sessionID,
		Step:                      state.Step.String(),
		HasReceipt:                state.ReceiptImage != nil,
		ItemCount:                 len(state.ItemImages),
		AwaitingMoreItemsDecision: state.AwaitingMoreItemsDecision,
		Finished:                  state.Step.Terminal(),
	}
}
