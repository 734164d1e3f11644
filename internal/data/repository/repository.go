package repository

import (
	"bilemo-api/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Customer     CustomerRepository
	User         UserRepository
	CustomerUser CustomerUserRepository
	Phone        PhoneRepository
	Tx           TxManager
	Health       HealthChecker
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Customer:     NewCustomerRepository(db, log),
		User:         NewUserRepository(db, log),
		CustomerUser: NewCustomerUserRepository(db, log),
		Phone:        NewPhoneRepository(db, log),
		Tx:           NewTxManager(db, log),
		Health:       db,
	}
}
