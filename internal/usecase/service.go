package usecase

import (
	"bilemo-api/internal/data/repository"
	"bilemo-api/pkg/cache"
	"bilemo-api/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Customer CustomerService
	Phone    PhoneService
	User     UserService
}

func NewService(repo *repository.Repository, c cache.TagAwareCache, config *utils.Config, log *zap.Logger) *Service {
	tokens := NewTokenManager(config.JWT.Secret, config.JWT.Issuer, config.JWT.TTL())

	return &Service{
		Auth:     NewAuthService(repo, c, tokens, log),
		Customer: NewCustomerService(repo, c, log),
		Phone:    NewPhoneService(repo, c, log),
		User:     NewUserService(repo, c, log),
	}
}
