package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/data/repository"
	"bilemo-api/internal/dto/request"
	"bilemo-api/internal/dto/response"
	"bilemo-api/pkg/cache"
	"bilemo-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CustomerService interface {
	GetCustomers(ctx context.Context, principal *entity.Customer, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error)
	GetCustomerByID(ctx context.Context, principal *entity.Customer, customerID string) (*response.CustomerResponse, error)
	CreateCustomer(ctx context.Context, principal *entity.Customer, req *request.CustomerRequest) (*response.CustomerResponse, error)
	UpdateCustomer(ctx context.Context, principal *entity.Customer, customerID string, req *request.CustomerUpdateRequest) error
	DeleteCustomer(ctx context.Context, principal *entity.Customer, customerID string) error
}

type customerService struct {
	repo  *repository.Repository
	cache cache.TagAwareCache
	log   *zap.Logger
}

func NewCustomerService(
	repo *repository.Repository,
	c cache.TagAwareCache,
	log *zap.Logger,
) CustomerService {
	return &customerService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "customer")),
	}
}

func (s *customerService) GetCustomers(ctx context.Context, principal *entity.Customer, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CustomerResponse], error) {
	key := req.CacheKey("getAllCustomer")

	page, err := cache.Remember(ctx, s.cache, key, []string{cache.TagCustomers},
		func(ctx context.Context) (*response.PaginatedResponse[response.CustomerResponse], error) {
			customers, err := s.repo.Customer.FindAll(ctx, req.Limit(), req.Offset())
			if err != nil {
				return nil, fmt.Errorf("get customers: %w", err)
			}

			total, err := s.repo.Customer.CountAll(ctx)
			if err != nil {
				return nil, fmt.Errorf("count customers: %w", err)
			}

			if err := attachUsers(ctx, s.repo, customers); err != nil {
				return nil, err
			}

			// cached pages are shared by every role, admin links are added per request
			data := make([]response.CustomerResponse, len(customers))
			for i, c := range customers {
				data[i] = response.CustomerToResponse(c, false)
			}
			return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
		})
	if err != nil {
		s.log.Error("Failed to get customers",
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

func (s *customerService) GetCustomerByID(ctx context.Context, principal *entity.Customer, customerID string) (*response.CustomerResponse, error) {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if err := attachUsers(ctx, s.repo, []*entity.Customer{customer}); err != nil {
		s.log.Error("Failed to load customer users", zap.Error(err), zap.String("customer_id", customerID))
		return nil, err
	}

	resp := response.CustomerToResponse(customer, principal.IsAdmin())
	return &resp, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, principal *entity.Customer, req *request.CustomerRequest) (*response.CustomerResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	customer := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.TrimSpace(req.Email),
		Password: hashed,
		Roles:    normalizeRoles(req.Roles),
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, customer.Email, uuid.Nil); err != nil {
			return err
		}

		// the related user is resolved before anything is written
		var user *entity.User
		if req.UserID != nil {
			user, err = s.findRelatedUser(ctx, *req.UserID)
			if err != nil {
				return err
			}
		}

		if err := s.repo.Customer.Create(ctx, customer); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}

		if user != nil {
			if err := attachCustomers(ctx, s.repo, user); err != nil {
				return err
			}
			entity.Link(customer, user)
			edge := &entity.CustomerUser{CustomerID: customer.ID, UserID: user.ID, CreatedAt: now}
			if err := s.repo.CustomerUser.Attach(ctx, edge); err != nil {
				return fmt.Errorf("link user: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Failed to create customer", zap.Error(err), zap.String("email", req.Email))
		return nil, err
	}

	s.invalidate(ctx, cache.TagCustomers, cache.TagUsers)

	s.log.Info("Customer created",
		zap.String("customer_id", customer.ID.String()),
		zap.String("by", principal.ID.String()),
	)

	resp := response.CustomerToResponse(customer, principal.IsAdmin())
	return &resp, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, principal *entity.Customer, customerID string, req *request.CustomerUpdateRequest) error {
	existing, err := s.load(ctx, customerID)
	if err != nil {
		return err
	}

	if err := validate(req); err != nil {
		return err
	}

	var hashed string
	if req.Password != nil {
		if hashed, err = utils.HashPassword(*req.Password); err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if req.Email != nil && !strings.EqualFold(*req.Email, existing.Email) {
			if err := s.ensureEmailFree(ctx, *req.Email, existing.ID); err != nil {
				return err
			}
		}

		var user *entity.User
		if req.UserID != nil {
			user, err = s.findRelatedUser(ctx, *req.UserID)
			if err != nil {
				return err
			}
		}

		merged := mergeCustomer(existing, req, hashed)
		merged.UpdatedAt = time.Now()

		if err := s.repo.Customer.Update(ctx, merged); err != nil {
			return fmt.Errorf("update customer: %w", err)
		}

		if user != nil {
			if err := attachUsers(ctx, s.repo, []*entity.Customer{merged}); err != nil {
				return err
			}
			if entity.Link(merged, user) {
				edge := &entity.CustomerUser{CustomerID: merged.ID, UserID: user.ID, CreatedAt: merged.UpdatedAt}
				if err := s.repo.CustomerUser.Attach(ctx, edge); err != nil {
					return fmt.Errorf("link user: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		s.log.Warn("Failed to update customer", zap.Error(err), zap.String("customer_id", customerID))
		return err
	}

	s.invalidate(ctx, cache.TagCustomers, cache.TagUsers)

	s.log.Info("Customer updated",
		zap.String("customer_id", customerID),
		zap.String("by", principal.ID.String()),
	)
	return nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, principal *entity.Customer, customerID string) error {
	customer, err := s.load(ctx, customerID)
	if err != nil {
		return err
	}

	err = s.repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.CustomerUser.DeleteByCustomerID(ctx, customer.ID); err != nil {
			return err
		}
		return s.repo.Customer.Delete(ctx, customer.ID)
	})
	if err != nil {
		s.log.Error("Failed to delete customer", zap.Error(err), zap.String("customer_id", customerID))
		return fmt.Errorf("delete customer: %w", err)
	}

	s.invalidate(ctx, cache.TagCustomers, cache.TagUsers)

	s.log.Info("Customer deleted",
		zap.String("customer_id", customerID),
		zap.String("by", principal.ID.String()),
	)
	return nil
}

func (s *customerService) load(ctx context.Context, customerID string) (*entity.Customer, error) {
	id, err := parseID(customerID)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get customer", zap.Error(err), zap.String("customer_id", customerID))
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer %s: %w", customerID, ErrNotFound)
	}

	return customer, nil
}

func (s *customerService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	other, err := s.repo.Customer.FindByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if other != nil && other.ID != self {
		return &ValidationError{Fields: map[string]string{"email": "This email is already used"}}
	}
	return nil
}

func (s *customerService) findRelatedUser(ctx context.Context, userID string) (*entity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrRelatedNotFound)
	}

	user, err := s.repo.User.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, ErrRelatedNotFound)
	}

	return user, nil
}

func (s *customerService) invalidate(ctx context.Context, tags ...string) {
	if err := s.cache.InvalidateTags(ctx, tags...); err != nil {
		s.log.Error("Failed to invalidate cache", zap.Error(err), zap.Strings("tags", tags))
	}
}
