package cmd

import (
	"context"
	"errors"
	"fmt"

	"bilemo-api/internal/usecase"

	"go.uber.org/zap"
)

// CreateAdmin handles `create-admin <email> <password>`.
func CreateAdmin(ctx context.Context, auth usecase.AuthService, args []string, logger *zap.Logger) error {
	if len(args) != 2 {
		return errors.New("usage: create-admin <email> <password>")
	}

	admin, err := auth.CreateAdmin(ctx, args[0], args[1])
	if err != nil {
		var validationErr *usecase.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Errorf("invalid arguments: %s", err)
		}
		return err
	}

	logger.Info("Admin customer created",
		zap.String("customer_id", admin.ID.String()),
		zap.String("email", admin.Email),
	)
	return nil
}
