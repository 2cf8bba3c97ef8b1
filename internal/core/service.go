package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Rorical/cadcopilot/internal/eventbus"
	"github.com/Rorical/cadcopilot/internal/models"
)

// Recommender is the outbound call to the recommendation service.
type Recommender interface {
	Recommend(ctx context.Context, instruction string) (models.RecommendationResponse, error)
}

type RecommendService struct {
	recommender Recommender
	state       *RequestState
	eventBus    *eventbus.EventBus
	logger      *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewRecommendService wires the trigger. eb may be nil when the service is
// driven through Execute only.
func NewRecommendService(r Recommender, eb *eventbus.EventBus, logger *zap.Logger) *RecommendService {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &RecommendService{
		recommender: r,
		state:       NewRequestState(),
		eventBus:    eb,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start runs the core logic in a goroutine
func (rs *RecommendService) Start() {
	rs.pushStateToUI(nil)
	rs.wg.Add(1)
	go rs.eventLoop()
}

// Stop cancels any request in flight and waits for the service goroutines.
func (rs *RecommendService) Stop() {
	rs.cancel()
	rs.wg.Wait()
}

func (rs *RecommendService) State() *RequestState {
	return rs.state
}

func (rs *RecommendService) eventLoop() {
	defer rs.wg.Done()
	for {
		select {
		case <-rs.ctx.Done():
			return
		case event, ok := <-rs.eventBus.UIToCore():
			if !ok {
				return
			}
			rs.handleUIEvent(event)
		}
	}
}

func (rs *RecommendService) handleUIEvent(event eventbus.UIEvent) {
	switch e := event.(type) {
	case eventbus.ExecuteEvent:
		requestID, err := rs.state.Start(e.Instruction)
		if err != nil {
			rs.logger.Debug("execute refused", zap.String("instruction", e.Instruction), zap.Error(err))
			rs.pushStateToUI(err)
			return
		}
		rs.pushStateToUI(nil)

		// The call runs off the loop so a second ExecuteEvent is refused
		// by Start instead of queueing behind it.
		rs.wg.Add(1)
		go func() {
			defer rs.wg.Done()
			rs.settle(rs.ctx, requestID, e.Instruction)
			rs.pushStateToUI(nil)
		}()
	}
}

// Execute runs one request synchronously: start, call, settle. It returns
// ErrEmptyInstruction or ErrRequestInFlight without touching state; any
// failure of the call itself settles as the backend error response.
func (rs *RecommendService) Execute(ctx context.Context, instruction string) (models.RecommendationResponse, error) {
	requestID, err := rs.state.Start(instruction)
	if err != nil {
		return models.RecommendationResponse{}, err
	}
	rs.pushStateToUI(nil)

	resp := rs.settle(ctx, requestID, instruction)
	rs.pushStateToUI(nil)
	return resp, nil
}

func (rs *RecommendService) settle(ctx context.Context, requestID, instruction string) models.RecommendationResponse {
	logger := rs.logger.With(zap.String("request_id", requestID))
	logger.Info("recommendation requested", zap.String("instruction", instruction))

	start := time.Now()
	resp, err := rs.recommender.Recommend(ctx, instruction)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("recommendation cancelled", zap.Duration("duration", time.Since(start)))
		} else {
			logger.Warn("recommendation failed", zap.Duration("duration", time.Since(start)), zap.Error(err))
		}
		resp = models.BackendErrorResponse()
	} else {
		logger.Info("recommendation settled",
			zap.Bool("found", resp.Found),
			zap.Duration("duration", time.Since(start)))
	}

	if !rs.state.Settle(requestID, resp) {
		logger.Warn("stale settle ignored")
	}
	return resp
}

func (rs *RecommendService) pushStateToUI(refused error) {
	if rs.eventBus == nil {
		return
	}
	if err := rs.eventBus.SendToUI(eventbus.StateUpdateEvent{
		Snapshot: rs.state.Snapshot(),
		Err:      refused,
	}); err != nil {
		rs.logger.Warn("failed to send state to UI", zap.Error(err))
	}
}
