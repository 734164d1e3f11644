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

type AuthService interface {
	Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error)
	Authenticate(ctx context.Context, token string) (*entity.Customer, error)
	CreateAdmin(ctx context.Context, email, password string) (*entity.Customer, error)
}

type authService struct {
	repo   *repository.Repository
	cache  cache.TagAwareCache
	tokens *TokenManager
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	c cache.TagAwareCache,
	tokens *TokenManager,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		cache:  c,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.TokenResponse, error) {
	customer, err := s.repo.Customer.FindByEmail(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		s.log.Error("Failed to find customer by email", zap.Error(err))
		return nil, fmt.Errorf("find customer: %w", err)
	}

	if customer == nil || !utils.CheckPasswordHash(req.Password, customer.Password) {
		s.log.Warn("Login failed", zap.String("username", req.Username))
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(customer)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("sign token: %w", err)
	}

	s.log.Info("Customer logged in", zap.String("customer_id", customer.ID.String()))
	return &response.TokenResponse{Token: token}, nil
}

// Authenticate resolves a bearer token to a freshly loaded customer.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.Customer, error) {
	id, _, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	customer, err := s.repo.Customer.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load principal: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: customer %s no longer exists", ErrUnauthorized, id)
	}

	return customer, nil
}

// CreateAdmin registers a customer named "admin" holding ROLE_ADMIN.
func (s *authService) CreateAdmin(ctx context.Context, email, password string) (*entity.Customer, error) {
	req := &request.CustomerRequest{
		Name:     "admin",
		Email:    email,
		Password: password,
		Roles:    []string{entity.RoleAdmin},
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	existing, err := s.repo.Customer.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("customer %s: %w", email, ErrConflict)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	admin := &entity.Customer{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Email:    email,
		Password: hashed,
		Roles:    req.Roles,
	}

	if err := s.repo.Customer.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}

	if err := s.cache.InvalidateTags(ctx, cache.TagCustomers); err != nil {
		s.log.Error("Failed to invalidate cache", zap.Error(err), zap.String("tag", cache.TagCustomers))
	}

	s.log.Info("Admin created", zap.String("customer_id", admin.ID.String()), zap.String("email", email))
	return admin, nil
}
