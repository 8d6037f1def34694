package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"psmestate/internal/models"
	"psmestate/internal/repositories/interfaces"
	"psmestate/internal/utils"
	"psmestate/internal/validators"
	"psmestate/pkg/automation"
	"psmestate/pkg/logger"
	"psmestate/pkg/websocket"
)

var (
	ErrTM30NotDispatchable = errors.New("registration cannot be dispatched in its current status")
	ErrTM30InvalidCallback = errors.New("callback status is not reachable from the current status")
	ErrUnknownDispatchID   = errors.New("no registration matches the dispatch ID")
)

type TM30Service interface {
	CreateDraft(ctx context.Context, request *validators.TM30CreateRequest) (*models.TM30Registration, error)
	Dispatch(ctx context.Context, id primitive.ObjectID) (*models.TM30Registration, error)
	HandleCallback(ctx context.Context, request *validators.TM30CallbackRequest) (*models.TM30Registration, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.TM30Registration, error)
	GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.TM30Registration, error)
	List(ctx context.Context, status models.TM30Status, params *utils.PaginationParams) ([]*models.TM30Registration, int64, error)
}

type tm30Service struct {
	tm30Repo    interfaces.TM30Repository
	bookingRepo interfaces.BookingRepository
	dispatcher  *automation.GitHubDispatcher
	events      *websocket.Handler
	logger      *logger.Logger
}

func NewTM30Service(
	tm30Repo interfaces.TM30Repository,
	bookingRepo interfaces.BookingRepository,
	dispatcher *automation.GitHubDispatcher,
	events *websocket.Handler,
	log *logger.Logger,
) TM30Service {
	return &tm30Service{
		tm30Repo:    tm30Repo,
		bookingRepo: bookingRepo,
		dispatcher:  dispatcher,
		events:      events,
		logger:      log,
	}
}

func (s *tm30Service) CreateDraft(ctx context.Context, request *validators.TM30CreateRequest) (*models.TM30Registration, error) {
	bookingID, err := primitive.ObjectIDFromHex(request.BookingID)
	if err != nil {
		return nil, fmt.Errorf("invalid booking ID: %w", err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	guests := make([]models.TM30Guest, 0, len(request.Guests))
	for _, g := range request.Guests {
		guests = append(guests, models.TM30Guest{
			FirstName:      g.FirstName,
			LastName:       g.LastName,
			Nationality:    g.Nationality,
			PassportNumber: g.PassportNo,
			BirthDate:      g.BirthDate,
			ArrivalDate:    g.ArrivalDate,
		})
	}

	registration := &models.TM30Registration{
		BookingID:  booking.ID,
		PropertyID: booking.PropertyID,
		Guests:     guests,
		CheckIn:    booking.CheckIn,
	}

	if err := s.tm30Repo.Create(ctx, registration); err != nil {
		return nil, err
	}

	s.logger.LogTM30Event(registration.ID, "draft_created", map[string]interface{}{
		"booking_id": booking.ID.Hex(),
		"guests":     len(guests),
	})

	return registration, nil
}

// Dispatch fires the external submission workflow. The workflow has no run
// identifier to hand back, so a fresh dispatch_id is threaded through the
// inputs and echoed in the signed callback.
func (s *tm30Service) Dispatch(ctx context.Context, id primitive.ObjectID) (*models.TM30Registration, error) {
	registration, err := s.tm30Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !registration.CanTransitionTo(models.TM30StatusProcessing) {
		return nil, fmt.Errorf("%w: %s", ErrTM30NotDispatchable, registration.Status)
	}

	dispatchID := utils.GenerateDispatchID()

	guestsJSON, err := json.Marshal(registration.Guests)
	if err != nil {
		return nil, fmt.Errorf("failed to encode guests: %w", err)
	}

	inputs := map[string]string{
		"dispatch_id": dispatchID,
		"booking_id":  registration.BookingID.Hex(),
		"check_in":    registration.CheckIn.Format("2006-01-02"),
		"guests":      string(guestsJSON),
	}

	if err := s.dispatcher.Dispatch(ctx, inputs); err != nil {
		return nil, err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":         models.TM30StatusProcessing,
		"dispatch_id":    dispatchID,
		"dispatched_at":  now,
		"failure_reason": "",
	}
	if err := s.tm30Repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	s.logger.LogTM30Event(id, utils.EventTM30Dispatched, map[string]interface{}{
		"dispatch_id": dispatchID,
	})
	s.publishEvent(utils.EventTM30Dispatched, id, map[string]interface{}{
		"dispatch_id": dispatchID,
		"status":      string(models.TM30StatusProcessing),
	})

	return s.tm30Repo.GetByID(ctx, id)
}

// HandleCallback applies the workflow's signed result. Signature verification
// happens at the transport layer before this is called.
func (s *tm30Service) HandleCallback(ctx context.Context, request *validators.TM30CallbackRequest) (*models.TM30Registration, error) {
	registration, err := s.tm30Repo.GetByDispatchID(ctx, request.DispatchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDispatchID, request.DispatchID)
	}

	next := models.TM30Status(request.Status)
	if !registration.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTM30InvalidCallback, registration.Status, next)
	}

	updates := map[string]interface{}{"status": next}
	switch next {
	case models.TM30StatusApproved:
		updates["receipt_number"] = request.ReceiptNumber
		updates["completed_at"] = time.Now()
	case models.TM30StatusSubmitted:
		updates["receipt_number"] = request.ReceiptNumber
	case models.TM30StatusFailed:
		updates["failure_reason"] = request.FailureReason
	}

	if err := s.tm30Repo.Update(ctx, registration.ID, updates); err != nil {
		return nil, err
	}

	event := utils.EventTM30Completed
	if next == models.TM30StatusFailed {
		event = utils.EventTM30Failed
	}
	s.logger.LogTM30Event(registration.ID, event, map[string]interface{}{
		"dispatch_id": request.DispatchID,
		"status":      string(next),
	})
	s.publishEvent(event, registration.ID, map[string]interface{}{
		"dispatch_id":    request.DispatchID,
		"status":         string(next),
		"receipt_number": request.ReceiptNumber,
		"failure_reason": request.FailureReason,
	})

	return s.tm30Repo.GetByID(ctx, registration.ID)
}

func (s *tm30Service) GetByID(ctx context.Context, id primitive.ObjectID) (*models.TM30Registration, error) {
	return s.tm30Repo.GetByID(ctx, id)
}

func (s *tm30Service) GetByBooking(ctx context.Context, bookingID primitive.ObjectID) ([]*models.TM30Registration, error) {
	return s.tm30Repo.GetByBooking(ctx, bookingID)
}

func (s *tm30Service) List(ctx context.Context, status models.TM30Status, params *utils.PaginationParams) ([]*models.TM30Registration, int64, error) {
	if status != "" {
		return s.tm30Repo.GetByStatus(ctx, status, params)
	}
	return s.tm30Repo.List(ctx, params)
}

func (s *tm30Service) publishEvent(event string, id primitive.ObjectID, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	data["registration_id"] = id.Hex()
	s.events.PublishTM30Event(event, data)
}
