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
	"hotel-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	GetHotels(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.HotelResponse], error)
	GetHotelByID(ctx context.Context, hotelID string) (*response.HotelDetailResponse, error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error)

	CreateHotel(ctx context.Context, req *request.HotelRequest) (*response.HotelResponse, error)
	UpdateHotel(ctx context.Context, hotelID string, req *request.HotelUpdateRequest) (*response.HotelResponse, error)
	DeleteHotel(ctx context.Context, hotelID string) error

	CreateRoom(ctx context.Context, hotelID string, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) GetHotels(ctx context.Context, req *request.PaginatedRequest, cityFilter *string) (*response.PaginatedResponse[response.HotelResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	hotels, err := s.repo.Hotel.FindAll(ctx, limit, offset, cityFilter)
	if err != nil {
		s.log.Error("Failed to get hotels from repository",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", limit),
			zap.Stringp("city_filter", cityFilter),
		)
		return nil, fmt.Errorf("get hotels: %w", err)
	}

	total, err := s.repo.Hotel.CountAll(ctx, cityFilter)
	if err != nil {
		s.log.Error("Failed to count hotels",
			zap.Error(err),
			zap.Stringp("city_filter", cityFilter),
		)
		return nil, fmt.Errorf("count hotels: %w", err)
	}

	hotelResponses := make([]response.HotelResponse, len(hotels))
	for i, hotel := range hotels {
		hotelResponses[i] = response.HotelToResponse(hotel)
	}

	s.log.Debug("Hotels retrieved",
		zap.Int("count", len(hotels)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return response.NewPaginatedResponse(hotelResponses, req.Page, limit, total), nil
}

func (s *catalogService) GetHotelByID(ctx context.Context, hotelID string) (*response.HotelDetailResponse, error) {
	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.Room.FindByHotelID(ctx, hotel.ID)
	if err != nil {
		s.log.Warn("Failed to get rooms for hotel",
			zap.Error(err),
			zap.String("hotel_id", hotelID),
		)
		// Continue with empty rooms
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return &response.HotelDetailResponse{
		HotelResponse: response.HotelToResponse(hotel),
		Rooms:         roomResponses,
	}, nil
}

func (s *catalogService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	roomResp := response.RoomToResponse(room)
	return &roomResp, nil
}

func (s *catalogService) CreateHotel(ctx context.Context, req *request.HotelRequest) (*response.HotelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create hotel validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	now := time.Now()
	hotel := &entity.Hotel{
		Base:        entity.NewBase(now),
		Name:        req.Name,
		Location:    req.Location,
		City:        req.City,
		Description: req.Description,
	}

	if err := s.repo.Hotel.Create(ctx, hotel); err != nil {
		s.log.Error("Failed to create hotel",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create hotel: %w", err)
	}

	s.log.Info("Hotel created",
		zap.String("hotel_id", hotel.ID.String()),
		zap.String("name", hotel.Name),
		zap.String("city", hotel.City),
	)

	hotelResp := response.HotelToResponse(hotel)
	return &hotelResp, nil
}

func (s *catalogService) UpdateHotel(ctx context.Context, hotelID string, req *request.HotelUpdateRequest) (*response.HotelResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.Name != nil && *req.Name != hotel.Name {
		hotel.Name = *req.Name
		updated = true
	}

	if req.Location != nil && *req.Location != hotel.Location {
		hotel.Location = *req.Location
		updated = true
	}

	if req.City != nil && *req.City != hotel.City {
		hotel.City = *req.City
		updated = true
	}

	if req.Description != nil {
		hotel.Description = req.Description
		updated = true
	}

	if updated {
		hotel.UpdatedAt = time.Now()
		if err := s.repo.Hotel.Update(ctx, hotel); err != nil {
			s.log.Error("Failed to update hotel",
				zap.Error(err),
				zap.String("hotel_id", hotelID),
			)
			return nil, fmt.Errorf("update hotel %s: %w", hotelID, err)
		}
	}

	s.log.Info("Hotel updated",
		zap.String("hotel_id", hotelID),
		zap.Bool("was_updated", updated),
	)

	hotelResp := response.HotelToResponse(hotel)
	return &hotelResp, nil
}

func (s *catalogService) DeleteHotel(ctx context.Context, hotelID string) error {
	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return err
	}

	rooms, err := s.repo.Room.FindByHotelID(ctx, hotel.ID)
	if err != nil {
		return fmt.Errorf("get rooms for hotel %s: %w", hotelID, err)
	}
	for _, room := range rooms {
		if err := s.ensureUnheld(ctx, room.ID); err != nil {
			return err
		}
	}

	if err := s.repo.Hotel.Delete(ctx, hotel.ID); err != nil {
		s.log.Error("Failed to delete hotel",
			zap.Error(err),
			zap.String("hotel_id", hotelID),
		)
		return fmt.Errorf("delete hotel %s: %w", hotelID, err)
	}

	s.log.Info("Hotel deleted",
		zap.String("hotel_id", hotelID),
		zap.String("name", hotel.Name),
	)
	return nil
}

func (s *catalogService) CreateRoom(ctx context.Context, hotelID string, req *request.RoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	hotel, err := s.findHotel(ctx, hotelID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	room := &entity.Room{
		Base:       entity.NewBase(now),
		HotelID:    hotel.ID,
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		PriceCents: utils.ToCents(*req.Price),
		Listed:     true,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateRoom
		}
		s.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("hotel_id", hotelID),
			zap.String("room_number", req.RoomNumber),
		)
		return nil, fmt.Errorf("create room: %w", err)
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("hotel_id", hotelID),
		zap.String("room_number", room.RoomNumber),
		zap.Int64("price_cents", room.PriceCents),
	)

	roomResp := response.RoomToResponse(room)
	return &roomResp, nil
}

// UpdateRoom changes catalog data only. Prices of existing bookings are
// fixed at initiation and are not touched.
func (s *catalogService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	updated := false

	if req.RoomNumber != nil && *req.RoomNumber != room.RoomNumber {
		room.RoomNumber = *req.RoomNumber
		updated = true
	}

	if req.Type != nil && *req.Type != room.Type {
		room.Type = *req.Type
		updated = true
	}

	if req.Price != nil && utils.ToCents(*req.Price) != room.PriceCents {
		room.PriceCents = utils.ToCents(*req.Price)
		updated = true
	}

	if req.Listed != nil && *req.Listed != room.Listed {
		room.Listed = *req.Listed
		updated = true
	}

	if updated {
		room.UpdatedAt = time.Now()
		if err := s.repo.Room.Update(ctx, room); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return nil, ErrDuplicateRoom
			}
			s.log.Error("Failed to update room",
				zap.Error(err),
				zap.String("room_id", roomID),
			)
			return nil, fmt.Errorf("update room %s: %w", roomID, err)
		}
	}

	s.log.Info("Room updated",
		zap.String("room_id", roomID),
		zap.Bool("was_updated", updated),
	)

	roomResp := response.RoomToResponse(room)
	return &roomResp, nil
}

func (s *catalogService) DeleteRoom(ctx context.Context, roomID string) error {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return err
	}

	if err := s.ensureUnheld(ctx, room.ID); err != nil {
		return err
	}

	if err := s.repo.Room.Delete(ctx, room.ID); err != nil {
		s.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}

	s.log.Info("Room deleted",
		zap.String("room_id", roomID),
		zap.String("room_number", room.RoomNumber),
	)
	return nil
}

func (s *catalogService) findHotel(ctx context.Context, hotelID string) (*entity.Hotel, error) {
	id, err := uuid.Parse(hotelID)
	if err != nil {
		s.log.Warn("Invalid hotel ID format", zap.String("hotel_id", hotelID))
		return nil, ErrInvalidID
	}

	hotel, err := s.repo.Hotel.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get hotel by ID",
			zap.Error(err),
			zap.String("hotel_id", hotelID),
		)
		return nil, fmt.Errorf("get hotel %s: %w", hotelID, err)
	}
	if hotel == nil {
		return nil, ErrHotelNotFound
	}
	return hotel, nil
}

func (s *catalogService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		s.log.Warn("Invalid room ID format", zap.String("room_id", roomID))
		return nil, ErrInvalidID
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get room by ID",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// ensureUnheld rejects removal of a room that a current or future booking holds.
func (s *catalogService) ensureUnheld(ctx context.Context, roomID uuid.UUID) error {
	held, err := s.repo.Booking.HasBlockingFrom(ctx, roomID, utils.TruncateDay(time.Now()))
	if err != nil {
		return fmt.Errorf("check bookings for room %s: %w", roomID.String(), err)
	}
	if held {
		return ErrRoomHasBookings
	}
	return nil
}
