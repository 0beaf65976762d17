package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-booking/internal/data/entity"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/dto/request"
	"hotel-booking/internal/dto/response"
	"hotel-booking/pkg/apperror"
	"hotel-booking/pkg/payment"
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const sweepBatchSize = 100

type ReservationService interface {
	Initiate(ctx context.Context, actor Actor, req *request.InitiateBookingRequest) (*response.BookingResponse, error)
	Finalize(ctx context.Context, actor Actor, req *request.FinalizeBookingRequest) (*response.BookingResponse, error)
	Cancel(ctx context.Context, actor Actor, bookingID string, req *request.CancelBookingRequest) (*response.CancellationResponse, error)
	Delete(ctx context.Context, actor Actor, bookingID string) error

	CheckAvailability(ctx context.Context, roomID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error)
	GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetRoomBookings(ctx context.Context, roomID string) ([]response.BookingResponse, error)

	// SweepExpired cancels pending bookings whose hold has lapsed and
	// returns how many it cancelled.
	SweepExpired(ctx context.Context) (int, error)
}

type ReservationOption func(*reservationService)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) ReservationOption {
	return func(s *reservationService) { s.now = now }
}

type reservationService struct {
	repo    *repository.Repository
	ledger  BookingLedger
	checker AvailabilityChecker
	gateway payment.Gateway
	events  EventPublisher
	locks   *roomLocks
	policy  ReservationPolicy
	now     func() time.Time
	log     *zap.Logger
}

func NewReservationService(repo *repository.Repository, gateway payment.Gateway, events EventPublisher, policy ReservationPolicy, log *zap.Logger, opts ...ReservationOption) ReservationService {
	if events == nil {
		events = NopPublisher{}
	}
	s := &reservationService{
		repo:    repo,
		ledger:  NewBookingLedger(repo, log),
		checker: NewAvailabilityChecker(repo.Booking, log),
		gateway: gateway,
		events:  events,
		locks:   newRoomLocks(),
		policy:  policy,
		now:     time.Now,
		log:     log.With(zap.String("service", "reservation")),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reservationService) Initiate(ctx context.Context, actor Actor, req *request.InitiateBookingRequest) (resp *response.BookingResponse, err error) {
	ctx, span := startSpan(ctx, "reservation.Initiate",
		attribute.String("user.id", actor.UserID.String()),
		attribute.String("room.id", req.RoomID),
	)
	defer func() { endSpan(span, err) }()

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	checkIn, _ := utils.ParseDate(req.CheckIn)
	checkOut, _ := utils.ParseDate(req.CheckOut)
	if !checkIn.Before(checkOut) {
		return nil, ErrInvalidDateRange
	}
	if checkIn.Before(utils.TruncateDay(s.now())) {
		return nil, ErrCheckInPast
	}

	hotelID := uuid.MustParse(req.HotelID)
	roomID := uuid.MustParse(req.RoomID)

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		s.log.Error("Failed to load room", zap.Error(err), zap.String("room_id", req.RoomID))
		return nil, fmt.Errorf("get room %s: %w", req.RoomID, err)
	}
	if room == nil {
		return nil, ErrUnknownRoom
	}
	if room.HotelID != hotelID {
		return nil, ErrRoomNotInHotel
	}

	total, err := ComputeAmount(room.PriceCents, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	now := s.now()
	booking := &entity.Booking{
		BaseNoDelete: entity.NewBaseNoDelete(now),
		UserID:       actor.UserID,
		HotelID:      hotelID,
		RoomID:       roomID,
		CheckIn:      checkIn,
		CheckOut:     checkOut,
		TotalCents:   total,
		Status:       entity.BookingStatusPending,
	}

	unlock := s.locks.Lock(roomID)
	available, err := s.checker.IsAvailable(ctx, roomID, checkIn, checkOut, uuid.Nil)
	if err == nil && !available {
		err = ErrRoomUnavailable
	}
	if err == nil {
		err = s.ledger.Create(ctx, booking)
	}
	unlock()
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			s.log.Error("Failed to create booking",
				zap.Error(err),
				zap.String("user_id", actor.UserID.String()),
				zap.String("room_id", req.RoomID),
			)
		}
		return nil, err
	}

	s.log.Info("Booking initiated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", actor.UserID.String()),
		zap.String("room_id", req.RoomID),
		zap.String("check_in", req.CheckIn),
		zap.String("check_out", req.CheckOut),
		zap.Int64("total_cents", total),
	)

	s.publish(ctx, EventBookingInitiated, booking, 0, "")
	return s.toResponse(ctx, booking, nil), nil
}

func (s *reservationService) Finalize(ctx context.Context, actor Actor, req *request.FinalizeBookingRequest) (resp *response.BookingResponse, err error) {
	ctx, span := startSpan(ctx, "reservation.Finalize",
		attribute.String("user.id", actor.UserID.String()),
		attribute.String("booking.id", req.BookingID),
	)
	defer func() { endSpan(span, err) }()

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	b, err := s.ledger.Get(ctx, uuid.MustParse(req.BookingID))
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b) {
		return nil, ErrNotOwner
	}
	if b.Status != entity.BookingStatusPending {
		return nil, ErrNotPending
	}

	// The guest pays for what they were shown. Nothing is charged on a mismatch.
	if utils.ToCents(*req.TotalAmount) != b.TotalCents {
		s.log.Warn("Finalize rejected on amount mismatch",
			zap.String("booking_id", req.BookingID),
			zap.Int64("claimed_cents", utils.ToCents(*req.TotalAmount)),
			zap.Int64("stored_cents", b.TotalCents),
		)
		return nil, ErrAmountMismatch
	}
	if stale(req, b) {
		return nil, ErrStaleBooking
	}

	if s.policy.holdExpired(b, s.now()) {
		s.abandon(ctx, b, "hold expired before payment", EventBookingExpired)
		return nil, ErrHoldExpired
	}

	if err := s.revalidate(ctx, b); err != nil {
		return nil, err
	}

	// Claiming the payment row first guarantees at most one charge per booking.
	now := s.now()
	pay := &entity.Payment{
		BaseNoDelete: entity.NewBaseNoDelete(now),
		BookingID:    b.ID,
		AmountCents:  b.TotalCents,
		Method:       req.PaymentMethod,
		Status:       entity.PaymentStatusPending,
	}
	if err := s.repo.Payment.Create(ctx, pay); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPaymentInProgress
		}
		s.log.Error("Failed to claim payment", zap.Error(err), zap.String("booking_id", req.BookingID))
		return nil, fmt.Errorf("claim payment for booking %s: %w", req.BookingID, err)
	}

	chargeCtx, cancel := context.WithTimeout(ctx, s.policy.PaymentTimeout)
	receipt, chargeErr := s.gateway.Charge(chargeCtx, payment.ChargeRequest{
		BookingID: b.ID.String(),
		Amount:    b.TotalCents,
		Currency:  s.policy.Currency,
		Method:    req.PaymentMethod,
	})
	cancel()

	// Money may have moved: finish the bookkeeping even if the caller left.
	ctx = context.WithoutCancel(ctx)

	if chargeErr != nil {
		return nil, s.failPayment(ctx, b, pay, chargeErr)
	}

	pay.Status = entity.PaymentStatusCompleted
	pay.Reference = &receipt.Reference

	unlock := s.locks.Lock(b.RoomID)
	available, err := s.checker.IsAvailable(ctx, b.RoomID, b.CheckIn, b.CheckOut, b.ID)
	if err == nil && !available {
		err = ErrRoomNoLongerAvailable
	}
	if err == nil {
		err = s.ledger.Confirm(ctx, b.ID, pay)
	}
	unlock()
	if err != nil {
		s.log.Error("Failed to confirm paid booking, reversing charge",
			zap.Error(err),
			zap.String("booking_id", req.BookingID),
			zap.String("reference", receipt.Reference),
		)
		s.reverseCharge(ctx, b, pay, "booking could not be confirmed")
		return nil, err
	}

	b.Status = entity.BookingStatusConfirmed
	s.setListed(ctx, b.RoomID, false)

	s.log.Info("Booking finalized",
		zap.String("booking_id", req.BookingID),
		zap.String("payment_id", pay.ID.String()),
		zap.String("reference", receipt.Reference),
		zap.Int64("amount_cents", pay.AmountCents),
	)

	s.publish(ctx, EventBookingConfirmed, b, 0, "")

	if fresh, err := s.ledger.Get(ctx, b.ID); err == nil {
		b = fresh
	}
	return s.toResponse(ctx, b, pay), nil
}

func (s *reservationService) Cancel(ctx context.Context, actor Actor, bookingID string, req *request.CancelBookingRequest) (resp *response.CancellationResponse, err error) {
	ctx, span := startSpan(ctx, "reservation.Cancel",
		attribute.String("user.id", actor.UserID.String()),
		attribute.String("booking.id", bookingID),
	)
	defer func() { endSpan(span, err) }()

	if req == nil {
		req = &request.CancelBookingRequest{}
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, ErrInvalidID
	}

	b, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b) {
		return nil, ErrNotOwner
	}
	if b.Status != entity.BookingStatusConfirmed {
		return nil, ErrNotConfirmed
	}

	now := s.now()
	refund := s.policy.RefundFor(b, now)

	reason := req.Reason
	if reason == "" {
		reason = "cancelled by guest"
		if actor.IsOperator() && actor.UserID != b.UserID {
			reason = "cancelled by operator"
		}
	}

	// Only the caller that wins this transition issues the refund.
	if err := s.ledger.Transition(ctx, id, entity.BookingStatusConfirmed, entity.BookingStatusCancelled, reason); err != nil {
		return nil, err
	}

	ctx = context.WithoutCancel(ctx)

	pay, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		s.log.Error("Failed to load payment for refund", zap.Error(err), zap.String("booking_id", bookingID))
	}

	var refundStatus entity.PaymentStatus
	if pay != nil && refund > 0 {
		refundStatus = s.refund(ctx, b, pay, refund)
	}

	s.restoreListing(ctx, b.RoomID)

	if fresh, err := s.ledger.Get(ctx, id); err == nil {
		b = fresh
	} else {
		b.Status = entity.BookingStatusCancelled
		b.CancelReason = &reason
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actor.UserID.String()),
		zap.Int64("refund_cents", refund),
		zap.String("refund_status", string(refundStatus)),
	)

	s.publish(ctx, EventBookingCancelled, b, refund, reason)

	return &response.CancellationResponse{
		Booking:      *s.toResponse(ctx, b, pay),
		RefundAmount: utils.FromCents(refund),
		RefundStatus: refundStatus,
	}, nil
}

func (s *reservationService) Delete(ctx context.Context, actor Actor, bookingID string) (err error) {
	ctx, span := startSpan(ctx, "reservation.Delete",
		attribute.String("user.id", actor.UserID.String()),
		attribute.String("booking.id", bookingID),
	)
	defer func() { endSpan(span, err) }()

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return ErrInvalidID
	}

	b, err := s.ledger.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanAccess(b) {
		return ErrNotOwner
	}
	// A charge may still land on this booking. Deleting now would orphan it.
	if b.Status == entity.BookingStatusPending && s.paymentInFlight(ctx, b, s.now()) {
		return ErrPaymentInProgress
	}

	if err := s.ledger.Delete(ctx, id); err != nil {
		return err
	}

	if b.Status == entity.BookingStatusPending {
		s.restoreListing(ctx, b.RoomID)
	}

	s.log.Info("Booking deleted",
		zap.String("booking_id", bookingID),
		zap.String("actor_id", actor.UserID.String()),
		zap.String("status", string(b.Status)),
	)

	s.publish(ctx, EventBookingDeleted, b, 0, "")
	return nil
}

func (s *reservationService) CheckAvailability(ctx context.Context, roomID string, req *request.AvailabilityRequest) (*response.AvailabilityResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, ErrInvalidID
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	checkIn, _ := utils.ParseDate(req.CheckIn)
	checkOut, _ := utils.ParseDate(req.CheckOut)

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	amount, err := ComputeAmount(room.PriceCents, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	available, err := s.checker.IsAvailable(ctx, id, checkIn, checkOut, uuid.Nil)
	if err != nil {
		s.log.Error("Failed to check availability", zap.Error(err), zap.String("room_id", roomID))
		return nil, err
	}

	return &response.AvailabilityResponse{
		RoomID:          roomID,
		CheckIn:         utils.FormatDate(checkIn),
		CheckOut:        utils.FormatDate(checkOut),
		Available:       available,
		Nights:          entity.StayNights(checkIn, checkOut),
		EstimatedAmount: utils.FromCents(amount),
	}, nil
}

func (s *reservationService) GetBooking(ctx context.Context, actor Actor, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, ErrInvalidID
	}

	b, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(b) {
		return nil, ErrNotOwner
	}

	pay, err := s.repo.Payment.FindByBookingID(ctx, id)
	if err != nil {
		s.log.Warn("Failed to load payment", zap.Error(err), zap.String("booking_id", bookingID))
	}
	return s.toResponse(ctx, b, pay), nil
}

func (s *reservationService) GetUserBookings(ctx context.Context, actor Actor, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, actor.UserID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings", zap.Error(err), zap.String("user_id", actor.UserID.String()))
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, bookings), req.Page, req.Limit(), total), nil
}

func (s *reservationService) GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var status *entity.BookingStatus
	if req.Status != "" {
		st := entity.BookingStatus(req.Status)
		status = &st
	}

	bookings, err := s.repo.Booking.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err), zap.String("status", req.Status))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, bookings), req.Page, req.Limit(), total), nil
}

func (s *reservationService) GetRoomBookings(ctx context.Context, roomID string) ([]response.BookingResponse, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, ErrInvalidID
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}

	bookings, err := s.repo.Booking.FindByRoomID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get room bookings", zap.Error(err), zap.String("room_id", roomID))
		return nil, fmt.Errorf("get room bookings: %w", err)
	}

	return s.toResponses(ctx, bookings), nil
}

func (s *reservationService) SweepExpired(ctx context.Context) (expired int, err error) {
	if s.policy.PendingTTL <= 0 {
		return 0, nil
	}

	ctx, span := startSpan(ctx, "reservation.SweepExpired")
	defer func() {
		span.SetAttributes(attribute.Int("bookings.expired", expired))
		endSpan(span, err)
	}()

	now := s.now()
	lapsed, err := s.repo.Booking.FindStalePending(ctx, now.Add(-s.policy.PendingTTL), sweepBatchSize)
	if err != nil {
		return 0, fmt.Errorf("find stale bookings: %w", err)
	}

	for _, b := range lapsed {
		if s.paymentInFlight(ctx, b, now) {
			continue
		}

		err := s.ledger.Transition(ctx, b.ID, entity.BookingStatusPending, entity.BookingStatusCancelled, "hold expired")
		if err != nil {
			if apperror.KindOf(err) == apperror.KindInternal {
				s.log.Error("Failed to expire booking", zap.Error(err), zap.String("booking_id", b.ID.String()))
			}
			continue
		}

		expired++
		b.Status = entity.BookingStatusCancelled
		s.restoreListing(ctx, b.RoomID)
		s.publish(ctx, EventBookingExpired, b, 0, "hold expired")
	}

	if expired > 0 {
		s.log.Info("Expired pending bookings", zap.Int("count", expired))
	}
	return expired, nil
}

// paymentInFlight reports whether a finalize call is still charging b.
func (s *reservationService) paymentInFlight(ctx context.Context, b *entity.Booking, now time.Time) bool {
	pay, err := s.repo.Payment.FindByBookingID(ctx, b.ID)
	if err != nil || pay == nil || pay.Status != entity.PaymentStatusPending {
		return false
	}
	return now.Sub(pay.CreatedAt) < 2*s.policy.PaymentTimeout
}

// revalidate re-runs the availability check for a pending booking right
// before payment. A booking that lost its room is cancelled.
func (s *reservationService) revalidate(ctx context.Context, b *entity.Booking) error {
	unlock := s.locks.Lock(b.RoomID)
	available, err := s.checker.IsAvailable(ctx, b.RoomID, b.CheckIn, b.CheckOut, b.ID)
	unlock()
	if err != nil {
		s.log.Error("Failed to revalidate booking", zap.Error(err), zap.String("booking_id", b.ID.String()))
		return err
	}
	if !available {
		s.abandon(ctx, b, "room no longer available", EventBookingCancelled)
		return ErrRoomNoLongerAvailable
	}
	return nil
}

// abandon cancels a pending booking that can no longer be paid for.
func (s *reservationService) abandon(ctx context.Context, b *entity.Booking, reason, event string) {
	err := s.ledger.Transition(ctx, b.ID, entity.BookingStatusPending, entity.BookingStatusCancelled, reason)
	if err != nil {
		s.log.Warn("Failed to cancel abandoned booking",
			zap.Error(err),
			zap.String("booking_id", b.ID.String()),
			zap.String("reason", reason),
		)
		return
	}
	b.Status = entity.BookingStatusCancelled
	b.CancelReason = &reason
	s.restoreListing(ctx, b.RoomID)
	s.publish(ctx, event, b, 0, reason)
}

func (s *reservationService) failPayment(ctx context.Context, b *entity.Booking, pay *entity.Payment, chargeErr error) error {
	reason := payment.FailureReason(chargeErr)

	s.log.Warn("Payment failed",
		zap.Error(chargeErr),
		zap.String("booking_id", b.ID.String()),
		zap.String("reason", reason),
	)
	if errors.Is(chargeErr, payment.ErrTimeout) {
		s.log.Warn("Charge outcome unknown after timeout", zap.String("booking_id", b.ID.String()))
	}

	pay.Status = entity.PaymentStatusFailed
	pay.FailureReason = &reason
	if err := s.repo.Payment.Update(ctx, pay); err != nil {
		s.log.Error("Failed to record failed payment", zap.Error(err), zap.String("booking_id", b.ID.String()))
	}

	s.abandon(ctx, b, "payment failed: "+reason, EventBookingCancelled)
	s.publish(ctx, EventPaymentFailed, b, 0, reason)

	return apperror.Payment(reason).Wrap(chargeErr)
}

// reverseCharge refunds a completed charge whose booking could not be
// confirmed, then cancels the booking.
func (s *reservationService) reverseCharge(ctx context.Context, b *entity.Booking, pay *entity.Payment, reason string) {
	s.refund(ctx, b, pay, pay.AmountCents)
	s.abandon(ctx, b, reason, EventBookingCancelled)
}

func (s *reservationService) refund(ctx context.Context, b *entity.Booking, pay *entity.Payment, amount int64) entity.PaymentStatus {
	pay.RefundCents = amount

	if pay.Reference == nil {
		pay.Status = entity.PaymentStatusRefundFailed
		s.log.Error("Cannot refund payment without reference", zap.String("booking_id", b.ID.String()))
	} else {
		refundCtx, cancel := context.WithTimeout(ctx, s.policy.PaymentTimeout)
		err := s.gateway.Refund(refundCtx, *pay.Reference, amount)
		cancel()

		if err != nil {
			pay.Status = entity.PaymentStatusRefundFailed
			s.log.Error("Refund failed",
				zap.Error(err),
				zap.String("booking_id", b.ID.String()),
				zap.String("reference", *pay.Reference),
				zap.Int64("amount_cents", amount),
			)
		} else {
			pay.Status = entity.PaymentStatusRefunded
		}
	}

	if err := s.repo.Payment.Update(ctx, pay); err != nil {
		s.log.Error("Failed to record refund", zap.Error(err), zap.String("booking_id", b.ID.String()))
	}
	if pay.Status == entity.PaymentStatusRefunded {
		s.publish(ctx, EventPaymentRefunded, b, amount, "")
	}
	return pay.Status
}

// restoreListing relists a room once nothing holds it from today on.
func (s *reservationService) restoreListing(ctx context.Context, roomID uuid.UUID) {
	held, err := s.repo.Booking.HasBlockingFrom(ctx, roomID, utils.TruncateDay(s.now()))
	if err != nil {
		s.log.Warn("Failed to check room holds", zap.Error(err), zap.String("room_id", roomID.String()))
		return
	}
	if !held {
		s.setListed(ctx, roomID, true)
	}
}

func (s *reservationService) setListed(ctx context.Context, roomID uuid.UUID, listed bool) {
	if err := s.repo.Room.SetListed(ctx, roomID, listed); err != nil {
		s.log.Warn("Failed to update room listing",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
			zap.Bool("listed", listed),
		)
	}
}

func (s *reservationService) publish(ctx context.Context, key string, b *entity.Booking, refund int64, reason string) {
	evt := BookingEvent{
		BookingID:    b.ID.String(),
		UserID:       b.UserID.String(),
		HotelID:      b.HotelID.String(),
		RoomID:       b.RoomID.String(),
		CheckIn:      utils.FormatDate(b.CheckIn),
		CheckOut:     utils.FormatDate(b.CheckOut),
		Status:       string(b.Status),
		TotalAmount:  utils.FromCents(b.TotalCents),
		RefundAmount: utils.FromCents(refund),
		Reason:       reason,
		OccurredAt:   s.now().UTC(),
	}
	if err := s.events.PublishJSON(ctx, key, evt); err != nil {
		s.log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("event", key),
			zap.String("booking_id", evt.BookingID),
		)
	}
}

func (s *reservationService) toResponse(ctx context.Context, b *entity.Booking, pay *entity.Payment) *response.BookingResponse {
	resp := response.BookingToResponse(b)
	resp.HoldExpiresAt = s.policy.HoldExpiresAt(b)
	resp.Payment = response.PaymentToResponse(pay)

	if hotel, err := s.repo.Hotel.FindByID(ctx, b.HotelID); err == nil && hotel != nil {
		resp.HotelName = hotel.Name
	}
	if room, err := s.repo.Room.FindByID(ctx, b.RoomID); err == nil && room != nil {
		resp.RoomNumber = room.RoomNumber
		resp.RoomType = room.Type
	}
	return &resp
}

func (s *reservationService) toResponses(ctx context.Context, bookings []*entity.Booking) []response.BookingResponse {
	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = *s.toResponse(ctx, b, nil)
	}
	return out
}

// stale reports whether the stay echoed by the guest differs from b.
func stale(req *request.FinalizeBookingRequest, b *entity.Booking) bool {
	if req.RoomID != nil {
		if id, err := uuid.Parse(*req.RoomID); err != nil || id != b.RoomID {
			return true
		}
	}
	if req.CheckIn != nil && *req.CheckIn != utils.FormatDate(b.CheckIn) {
		return true
	}
	if req.CheckOut != nil && *req.CheckOut != utils.FormatDate(b.CheckOut) {
		return true
	}
	return false
}
