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

// UserService manages the users of the authenticated customer.
type UserService interface {
	GetUsers(ctx context.Context, principal *entity.Customer, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUserByID(ctx context.Context, principal *entity.Customer, userID string) (*response.UserResponse, error)
	CreateUser(ctx context.Context, principal *entity.Customer, req *request.UserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, principal *entity.Customer, userID string, req *request.UserUpdateRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, principal *entity.Customer, userID string) error
}

type userService struct {
	repo  *repository.Repository
	cache cache.TagAwareCache
	log   *zap.Logger
}

func NewUserService(
	repo *repository.Repository,
	c cache.TagAwareCache,
	log *zap.Logger,
) UserService {
	return &userService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "user")),
	}
}

func (s *userService) GetUsers(ctx context.Context, principal *entity.Customer, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	key := req.CacheKey("getAllUser" + principal.ID.String())

	page, err := cache.Remember(ctx, s.cache, key, []string{cache.TagUsers},
		func(ctx context.Context) (*response.PaginatedResponse[response.UserResponse], error) {
			users, err := s.repo.User.FindByCustomerID(ctx, principal.ID, req.Limit(), req.Offset())
			if err != nil {
				return nil, fmt.Errorf("get users: %w", err)
			}

			total, err := s.repo.User.CountByCustomerID(ctx, principal.ID)
			if err != nil {
				return nil, fmt.Errorf("count users: %w", err)
			}

			data := make([]response.UserResponse, len(users))
			for i, u := range users {
				data[i] = response.UserToResponse(u)
			}
			return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
		})
	if err != nil {
		s.log.Error("Failed to get users",
			zap.Error(err),
			zap.String("customer_id", principal.ID.String()),
			zap.Int("page", req.Page),
			zap.Int("limit", req.Limit()),
		)
		return nil, err
	}

	return page, nil
}

func (s *userService) GetUserByID(ctx context.Context, principal *entity.Customer, userID string) (*response.UserResponse, error) {
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned, err := s.repo.CustomerUser.Exists(ctx, principal.ID, user.ID)
	if err != nil {
		return nil, fmt.Errorf("check ownership: %w", err)
	}
	if !owned {
		s.log.Warn("User read denied",
			zap.String("user_id", userID),
			zap.String("customer_id", principal.ID.String()),
		)
		return nil, fmt.Errorf("user %s: %w", userID, ErrForbidden)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *userService) CreateUser(ctx context.Context, principal *entity.Customer, req *request.UserRequest) (*response.UserResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	err := s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.User.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		entity.Link(principal, user)
		edge := &entity.CustomerUser{CustomerID: principal.ID, UserID: user.ID, CreatedAt: now}
		if err := s.repo.CustomerUser.Attach(ctx, edge); err != nil {
			return fmt.Errorf("link user: %w", err)
		}
		return nil
	})
	if err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("customer_id", principal.ID.String()))
		return nil, err
	}

	s.invalidate(ctx)

	s.log.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("customer_id", principal.ID.String()),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateUser is allowed to the owning customers and to admins.
func (s *userService) UpdateUser(ctx context.Context, principal *entity.Customer, userID string, req *request.UserUpdateRequest) (*response.UserResponse, error) {
	existing, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !principal.IsAdmin() {
		owned, err := s.repo.CustomerUser.Exists(ctx, principal.ID, existing.ID)
		if err != nil {
			return nil, fmt.Errorf("check ownership: %w", err)
		}
		if !owned {
			s.log.Warn("User update denied",
				zap.String("user_id", userID),
				zap.String("customer_id", principal.ID.String()),
			)
			return nil, fmt.Errorf("user %s: %w", userID, ErrForbidden)
		}
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	merged := mergeUser(existing, req)
	merged.UpdatedAt = time.Now()

	if err := s.repo.User.Update(ctx, merged); err != nil {
		s.log.Error("Failed to update user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.invalidate(ctx)

	s.log.Info("User updated",
		zap.String("user_id", userID),
		zap.String("by", principal.ID.String()),
	)

	resp := response.UserToResponse(merged)
	return &resp, nil
}

// DeleteUser detaches the user from the principal. The row itself is removed
// only when the principal was its last customer.
func (s *userService) DeleteUser(ctx context.Context, principal *entity.Customer, userID string) error {
	user, err := s.load(ctx, userID)
	if err != nil {
		return err
	}

	var removedRow bool
	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := attachCustomers(ctx, s.repo, user); err != nil {
			return err
		}

		var owner *entity.Customer
		for _, c := range user.Customers() {
			if c.ID == principal.ID {
				owner = c
				break
			}
		}
		if owner == nil {
			return fmt.Errorf("user %s: %w", userID, ErrForbidden)
		}

		entity.Unlink(owner, user)
		if err := s.repo.CustomerUser.Detach(ctx, owner.ID, user.ID); err != nil {
			return err
		}

		if len(user.Customers()) == 0 {
			removedRow = true
			return s.repo.User.Delete(ctx, user.ID)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Failed to delete user",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("customer_id", principal.ID.String()),
		)
		return err
	}

	s.invalidate(ctx)

	s.log.Info("User deleted",
		zap.String("user_id", userID),
		zap.String("customer_id", principal.ID.String()),
		zap.Bool("row_removed", removedRow),
	)
	return nil
}

func (s *userService) load(ctx context.Context, userID string) (*entity.User, error) {
	id, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	return user, nil
}

// user writes change the users embedded in customer pages too
func (s *userService) invalidate(ctx context.Context) {
	tags := []string{cache.TagUsers, cache.TagCustomers}
	if err := s.cache.InvalidateTags(ctx, tags...); err != nil {
		s.log.Error("Failed to invalidate cache", zap.Error(err), zap.Strings("tags", tags))
	}
}
