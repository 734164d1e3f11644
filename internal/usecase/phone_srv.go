package usecase

import (
	"context"
	"fmt"
	"time"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/data/repository"
	"bilemo-api/internal/dto/request"
	"bilemo-api/internal/dto/response"
	"bilemo-api/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PhoneService interface {
	GetPhones(ctx context.Context, principal *entity.Customer, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PhoneResponse], error)
	GetPhoneByID(ctx context.Context, principal *entity.Customer, phoneID string) (*response.PhoneResponse, error)
	CreatePhone(ctx context.Context, principal *entity.Customer, req *request.PhoneRequest) (*response.PhoneResponse, error)
	UpdatePhone(ctx context.Context, principal *entity.Customer, phoneID string, req *request.PhoneUpdateRequest) (*response.PhoneResponse, error)
	DeletePhone(ctx context.Context, principal *entity.Customer, phoneID string) error
}

type phoneService struct {
	repo  *repository.Repository
	cache cache.TagAwareCache
	log   *zap.Logger
}

func NewPhoneService(
	repo *repository.Repository,
	c cache.TagAwareCache,
	log *zap.Logger,
) PhoneService {
	return &phoneService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "phone")),
	}
}

func (s *phoneService) GetPhones(ctx context.Context, principal *entity.Customer, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PhoneResponse], error) {
	key := req.CacheKey("getAllPhone")

	page, err := cache.Remember(ctx, s.cache, key, []string{cache.TagPhones},
		func(ctx context.Context) (*response.PaginatedResponse[response.PhoneResponse], error) {
			phones, err := s.repo.Phone.FindAll(ctx, req.Limit(), req.Offset())
			if err != nil {
				return nil, fmt.Errorf("get phones: %w", err)
			}

			total, err := s.repo.Phone.CountAll(ctx)
			if err != nil {
				return nil, fmt.Errorf("count phones: %w", err)
			}

			data := make([]response.PhoneResponse, len(phones))
			for i, p := range phones {
				data[i] = response.PhoneToResponse(p, false)
			}
			return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
		})
	if err != nil {
		s.log.Error("Failed to get phones",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("limit", req.Limit()),
		)
		return nil, err
	}

	if principal.IsAdmin() {
		for i := range page.Data {
			page.Data[i].WithAdminLinks()
		}
	}

	return page, nil
}

func (s *phoneService) GetPhoneByID(ctx context.Context, principal *entity.Customer, phoneID string) (*response.PhoneResponse, error) {
	phone, err := s.load(ctx, phoneID)
	if err != nil {
		return nil, err
	}

	resp := response.PhoneToResponse(phone, principal.IsAdmin())
	return &resp, nil
}

func (s *phoneService) CreatePhone(ctx context.Context, principal *entity.Customer, req *request.PhoneRequest) (*response.PhoneResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	phone := &entity.Phone{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Model:           req.Model,
		Manufacturer:    req.Manufacturer,
		Processor:       req.Processor,
		RAM:             req.RAM,
		StorageCapacity: req.StorageCapacity,
		CameraDetails:   req.CameraDetails,
		BatteryLife:     req.BatteryLife,
		ScreenSize:      req.ScreenSize,
		Price:           req.Price,
		StockQuantity:   req.StockQuantity,
		ReleaseDate:     now,
	}

	if err := s.repo.Phone.Create(ctx, phone); err != nil {
		s.log.Error("Failed to create phone", zap.Error(err), zap.String("model", req.Model))
		return nil, fmt.Errorf("create phone: %w", err)
	}

	s.invalidate(ctx)

	s.log.Info("Phone created",
		zap.String("phone_id", phone.ID.String()),
		zap.String("by", principal.ID.String()),
	)

	resp := response.PhoneToResponse(phone, principal.IsAdmin())
	return &resp, nil
}

func (s *phoneService) UpdatePhone(ctx context.Context, principal *entity.Customer, phoneID string, req *request.PhoneUpdateRequest) (*response.PhoneResponse, error) {
	existing, err := s.load(ctx, phoneID)
	if err != nil {
		return nil, err
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	merged := mergePhone(existing, req)
	merged.UpdatedAt = time.Now()

	if err := s.repo.Phone.Update(ctx, merged); err != nil {
		s.log.Error("Failed to update phone", zap.Error(err), zap.String("phone_id", phoneID))
		return nil, fmt.Errorf("update phone: %w", err)
	}

	s.invalidate(ctx)

	s.log.Info("Phone updated",
		zap.String("phone_id", phoneID),
		zap.String("by", principal.ID.String()),
	)

	resp := response.PhoneToResponse(merged, principal.IsAdmin())
	return &resp, nil
}

func (s *phoneService) DeletePhone(ctx context.Context, principal *entity.Customer, phoneID string) error {
	phone, err := s.load(ctx, phoneID)
	if err != nil {
		return err
	}

	if err := s.repo.Phone.Delete(ctx, phone.ID); err != nil {
		s.log.Error("Failed to delete phone", zap.Error(err), zap.String("phone_id", phoneID))
		return fmt.Errorf("delete phone: %w", err)
	}

	s.invalidate(ctx)

	s.log.Info("Phone deleted",
		zap.String("phone_id", phoneID),
		zap.String("by", principal.ID.String()),
	)
	return nil
}

func (s *phoneService) load(ctx context.Context, phoneID string) (*entity.Phone, error) {
	id, err := parseID(phoneID)
	if err != nil {
		return nil, err
	}

	phone, err := s.repo.Phone.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get phone", zap.Error(err), zap.String("phone_id", phoneID))
		return nil, fmt.Errorf("get phone: %w", err)
	}
	if phone == nil {
		return nil, fmt.Errorf("phone %s: %w", phoneID, ErrNotFound)
	}

	return phone, nil
}

func (s *phoneService) invalidate(ctx context.Context) {
	if err := s.cache.InvalidateTags(ctx, cache.TagPhones); err != nil {
		s.log.Error("Failed to invalidate cache", zap.Error(err), zap.String("tag", cache.TagPhones))
	}
}
