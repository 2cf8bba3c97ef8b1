package core

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Rorical/cadcopilot/internal/models"
)

var (
	ErrEmptyInstruction = errors.New("instruction is empty")
	ErrRequestInFlight  = errors.New("a request is already in flight")
)

// RequestState owns the three state cells of the client. It only changes
// through Start and Settle.
type RequestState struct {
	mu          sync.RWMutex
	requestID   string
	instruction string
	lifecycle   models.Lifecycle
	response    *models.RecommendationResponse
	newID       func() string
}

func NewRequestState() *RequestState {
	return &RequestState{
		lifecycle: models.Idle,
		newID:     uuid.NewString,
	}
}

// Start moves to in-flight and clears the previous response. An empty
// instruction or an outstanding request leaves the state untouched.
func (rs *RequestState) Start(instruction string) (string, error) {
	if instruction == "" {
		return "", ErrEmptyInstruction
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.lifecycle == models.InFlight {
		return "", ErrRequestInFlight
	}

	rs.requestID = rs.newID()
	rs.instruction = instruction
	rs.lifecycle = models.InFlight
	rs.response = nil
	return rs.requestID, nil
}

// Settle stores resp for the request started with requestID. It reports
// false, changing nothing, when requestID is not the request in flight.
func (rs *RequestState) Settle(requestID string, resp models.RecommendationResponse) bool {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.lifecycle != models.InFlight || rs.requestID != requestID {
		return false
	}

	rs.lifecycle = models.Settled
	rs.response = &resp
	return true
}

func (rs *RequestState) Lifecycle() models.Lifecycle {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	return rs.lifecycle
}

// Response returns a copy of the settled response, or nil.
func (rs *RequestState) Response() *models.RecommendationResponse {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if rs.response == nil {
		return nil
	}
	resp := *rs.response
	return &resp
}

func (rs *RequestState) Snapshot() models.RequestSnapshot {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	snap := models.RequestSnapshot{
		RequestID:   rs.requestID,
		Instruction: rs.instruction,
		Lifecycle:   rs.lifecycle,
	}
	if rs.response != nil {
		resp := *rs.response
		snap.Response = &resp
	}
	return snap
}
