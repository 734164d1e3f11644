package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"bilemo-api/internal/data/entity"
	"bilemo-api/internal/data/repository"
	"bilemo-api/pkg/cache"
	"bilemo-api/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	seedAdminEmail = "admin@bilemo.com"
	seedPassword   = "password"
)

var (
	seedFirstNames    = []string{"Camille", "Louise", "Hugo", "Arthur", "Jade", "Lucas", "Manon", "Nathan", "Chloe", "Jules", "Lea", "Gabriel"}
	seedLastNames     = []string{"Martin", "Bernard", "Dubois", "Thomas", "Robert", "Richard", "Petit", "Durand", "Leroy", "Moreau", "Simon", "Laurent"}
	seedManufacturers = []string{"Samsung", "Apple", "Huawei", "Xiaomi", "OnePlus"}
	seedProcessors    = []string{"Snapdragon 888", "A14 Bionic", "Kirin 9000", "Exynos 2100"}
)

// Seed loads demo data: 10 users, one admin, 5 customers each linked to 5
// random users, and 10 phones.
func Seed(ctx context.Context, repo *repository.Repository, c cache.TagAwareCache, logger *zap.Logger) error {
	existing, err := repo.Customer.FindByEmail(ctx, seedAdminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		logger.Info("Seed skipped, fixtures already loaded")
		return nil
	}

	hashed, err := utils.HashPassword(seedPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	now := time.Now()
	base := func() entity.Base {
		return entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now}
	}

	err = repo.Tx.WithinTx(ctx, func(ctx context.Context) error {
		users := make([]*entity.User, 0, 10)
		for i := 0; i < 10; i++ {
			first := seedFirstNames[i%len(seedFirstNames)]
			last := seedLastNames[(i*7)%len(seedLastNames)]
			user := &entity.User{
				Base:      base(),
				Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
				FirstName: first,
				LastName:  last,
			}
			if err := repo.User.Create(ctx, user); err != nil {
				return err
			}
			users = append(users, user)
		}

		admin := &entity.Customer{
			Base:     base(),
			Name:     "BileMo Admin",
			Email:    seedAdminEmail,
			Password: hashed,
			Roles:    []string{entity.RoleAdmin},
		}
		if err := repo.Customer.Create(ctx, admin); err != nil {
			return err
		}

		var edges []*entity.CustomerUser
		for i := 0; i < 5; i++ {
			customer := &entity.Customer{
				Base:     base(),
				Name:     fmt.Sprintf("Customer %d", i+1),
				Email:    fmt.Sprintf("customer%d@example.com", i+1),
				Password: hashed,
				Roles:    []string{},
			}
			if err := repo.Customer.Create(ctx, customer); err != nil {
				return err
			}

			rand.Shuffle(len(users), func(a, b int) { users[a], users[b] = users[b], users[a] })
			for _, user := range users[:5] {
				if entity.Link(customer, user) {
					edges = append(edges, &entity.CustomerUser{CustomerID: customer.ID, UserID: user.ID, CreatedAt: now})
				}
			}
		}
		if err := repo.CustomerUser.AttachBatch(ctx, edges); err != nil {
			return err
		}

		for i := 0; i < 10; i++ {
			stock := fmt.Sprintf("%d", rand.IntN(101))
			phone := &entity.Phone{
				Base:            base(),
				Model:           "Model " + randomLetters(4),
				Manufacturer:    seedManufacturers[rand.IntN(len(seedManufacturers))],
				Processor:       seedProcessors[rand.IntN(len(seedProcessors))],
				RAM:             fmt.Sprintf("%d GB", []int{4, 8, 16}[rand.IntN(3)]),
				StorageCapacity: fmt.Sprintf("%dGB", []int{64, 128, 256, 512}[rand.IntN(4)]),
				CameraDetails:   fmt.Sprintf("%dMP", 12+rand.IntN(97)),
				BatteryLife:     fmt.Sprintf("%d heures", 10+rand.IntN(91)),
				ScreenSize:      fmt.Sprintf("%.2f pouces", 5.0+rand.Float64()*1.5),
				Price:           fmt.Sprintf("%d", 100+rand.IntN(901)),
				StockQuantity:   &stock,
				ReleaseDate:     now,
			}
			if err := repo.Phone.Create(ctx, phone); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}

	if err := c.InvalidateTags(ctx, cache.TagCustomers, cache.TagUsers, cache.TagPhones); err != nil {
		logger.Warn("Failed to invalidate cache after seed", zap.Error(err))
	}
	WarnLocalCache(c, "seed", logger)

	logger.Info("Fixtures loaded", zap.String("admin", seedAdminEmail))
	return nil
}

// WarnLocalCache reports that a write made from a CLI command cannot reach
// the in-process cache of a running server. Only the redis driver is shared.
func WarnLocalCache(c cache.TagAwareCache, command string, logger *zap.Logger) {
	if _, ok := c.(*cache.MemoryCache); !ok {
		return
	}
	logger.Warn("Running servers keep their own memory cache and may serve stale lists until restarted or the cache TTL expires; use CACHE_DRIVER=redis to share invalidations",
		zap.String("command", command))
}

func randomLetters(n int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	b := make([]byte, n)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}
