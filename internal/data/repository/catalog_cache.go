package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"hotel-booking/internal/data/entity"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// cacheLayer is a read-through redis cache for catalog rows. Redis failures
// degrade to the underlying store.
type cacheLayer struct {
	rdb   *redis.Client
	ttl   time.Duration
	group singleflight.Group
	log   *zap.Logger
}

func cachedLookup[T any](ctx context.Context, c *cacheLayer, key string, load func() (*T, error)) (*T, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var v T
		if jsonErr := json.Unmarshal(raw, &v); jsonErr == nil {
			return &v, nil
		}
		c.log.Warn("Dropping undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		item, err := load()
		if err != nil || item == nil {
			return item, err
		}
		if b, err := json.Marshal(item); err == nil {
			if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
				c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
		return item, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*T), nil
}

func (c *cacheLayer) evict(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.log.Warn("Cache evict failed", zap.String("key", key), zap.Error(err))
	}
}

type cachedRoomRepository struct {
	RoomRepository
	cache *cacheLayer
}

// NewCachedRoomRepository wraps rooms with a redis read-through cache on
// FindByID. Writes go to rooms and evict the cached row.
func NewCachedRoomRepository(rooms RoomRepository, rdb *redis.Client, ttl time.Duration, log *zap.Logger) RoomRepository {
	return &cachedRoomRepository{
		RoomRepository: rooms,
		cache:          &cacheLayer{rdb: rdb, ttl: ttl, log: log.With(zap.String("cache", "room"))},
	}
}

func roomKey(id uuid.UUID) string { return "hotel-booking:room:" + id.String() }

func (r *cachedRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return cachedLookup(ctx, r.cache, roomKey(id), func() (*entity.Room, error) {
		return r.RoomRepository.FindByID(ctx, id)
	})
}

func (r *cachedRoomRepository) Update(ctx context.Context, room *entity.Room) error {
	if err := r.RoomRepository.Update(ctx, room); err != nil {
		return err
	}
	r.cache.evict(ctx, roomKey(room.ID))
	return nil
}

func (r *cachedRoomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.RoomRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.evict(ctx, roomKey(id))
	return nil
}

func (r *cachedRoomRepository) SetListed(ctx context.Context, id uuid.UUID, listed bool) error {
	if err := r.RoomRepository.SetListed(ctx, id, listed); err != nil {
		return err
	}
	r.cache.evict(ctx, roomKey(id))
	return nil
}

type cachedHotelRepository struct {
	HotelRepository
	cache *cacheLayer
}

// NewCachedHotelRepository is the hotel counterpart of NewCachedRoomRepository.
func NewCachedHotelRepository(hotels HotelRepository, rdb *redis.Client, ttl time.Duration, log *zap.Logger) HotelRepository {
	return &cachedHotelRepository{
		HotelRepository: hotels,
		cache:           &cacheLayer{rdb: rdb, ttl: ttl, log: log.With(zap.String("cache", "hotel"))},
	}
}

func hotelKey(id uuid.UUID) string { return "hotel-booking:hotel:" + id.String() }

func (r *cachedHotelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hotel, error) {
	return cachedLookup(ctx, r.cache, hotelKey(id), func() (*entity.Hotel, error) {
		return r.HotelRepository.FindByID(ctx, id)
	})
}

func (r *cachedHotelRepository) Update(ctx context.Context, hotel *entity.Hotel) error {
	if err := r.HotelRepository.Update(ctx, hotel); err != nil {
		return err
	}
	r.cache.evict(ctx, hotelKey(hotel.ID))
	return nil
}

func (r *cachedHotelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.HotelRepository.Delete(ctx, id); err != nil {
		return err
	}
	r.cache.evict(ctx, hotelKey(id))
	return nil
}
