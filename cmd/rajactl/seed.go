package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"raja-digital/internal/model"
	"raja-digital/internal/repository"
)

type seedUser struct {
	id, name, role, shift, email, password string
}

var seedUsers = []seedUser{
	{"admin1", "Admin 1", model.RoleAdmin, model.Shift1, "admin1@raja.id", "admin123"},
	{"admin2", "Admin 2", model.RoleAdmin, model.Shift1, "admin2@raja.id", "admin123"},
	{"admin3", "Admin 3", model.RoleAdmin, model.Shift2, "admin3@raja.id", "admin123"},
	{"admin4", "Admin 4", model.RoleAdmin, model.Shift2, "admin4@raja.id", "admin123"},
	{"superadmin", "Super Admin", model.RoleSuperAdmin, "", "superadmin@raja.id", "superadmin123"},
}

var seedDriverNames = []string{
	"Ahmad Rizki", "Budi Santoso", "Cahyo Purnomo", "Dedi Kurniawan",
	"Eko Prasetyo", "Fajar Nugroho", "Gunawan Susilo", "Hendra Saputra",
	"Irwan Haryanto", "Joko Wibowo", "Kartono Wijaya", "Lukman Hakim",
	"Mulyadi Utomo", "Nur Hidayat", "Oki Firmansyah", "Prayoga Adi",
	"Qusyairi Rahman", "Rizal Maulana", "Slamet Raharjo", "Teguh Santoso",
	"Umar Bakri", "Vino Putranto", "Wahyu Setiawan", "Xaverius Hadi",
	"Yudi Pradipta", "Zainal Abidin", "Agus Salim", "Bambang Riyadi",
	"Cepi Hidayat", "Dadang Suhendar", "Edi Kurniawan", "Fandi Cahyono",
	"Gilang Ramadhan", "Hari Prabowo", "Ismail Hasyim", "Jajang Suparman",
	"Kusno Widjajanto", "Latif Maulana", "Mamat Suryadi", "Nanda Permana",
	"Opan Sugianto", "Parman Hartono", "Qodir Fauzan", "Rohman Effendi",
	"Subhan Hamdani", "Taufik Hidayah", "Ujang Sopandi", "Vieri Kusuma",
	"Wawan Hernawan", "Yanto Siswanto",
}

var (
	seedSuspended = map[string]bool{"driver003": true, "driver007": true, "driver015": true}
	seedWarning   = map[string]bool{"driver010": true, "driver020": true, "driver030": true, "driver040": true}
	seedMismatch  = map[string]int{"driver001": 3, "driver005": 2, "driver012": 1, "driver023": 2, "driver037": 1}
)

// buildSeedDrivers the initial fleet: every third driver is premium.
func buildSeedDrivers() []model.Driver {
	out := make([]model.Driver, len(seedDriverNames))
	for i, name := range seedDriverNames {
		id := fmt.Sprintf("driver%03d", i+1)
		status := model.DriverActive
		switch {
		case seedSuspended[id]:
			status = model.DriverSuspend
		case seedWarning[id]:
			status = model.DriverWarning
		}
		category := model.CategoryStandar
		if i%3 == 0 {
			category = model.CategoryPremium
		}
		out[i] = model.Driver{
			DriverID:      id,
			Name:          name,
			Phone:         fmt.Sprintf("0812%08d", 10000000+i),
			Plate:         fmt.Sprintf("B %d XY", 1000+i),
			Category:      category,
			Status:        status,
			MismatchCount: seedMismatch[id],
		}
	}
	return out
}

func buildSeedUsers(cost int) ([]model.User, error) {
	out := make([]model.User, 0, len(seedUsers))
	for _, u := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), cost)
		if err != nil {
			return nil, err
		}
		user := model.User{UserID: u.id, Name: u.name, Role: u.role, Email: u.email, PasswordHash: string(hash)}
		if u.shift != "" {
			shift := u.shift
			user.Shift = &shift
		}
		out = append(out, user)
	}
	return out, nil
}

// seed inserts users and drivers when the users table is empty.
// Reports whether anything was written.
func seed(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (bool, error) {
	n, err := repo.User.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		logger.Info("users present, seed skipped", zap.Int64("users", n))
		return false, nil
	}

	users, err := buildSeedUsers(bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	drivers := buildSeedDrivers()

	err = repo.RunInTx(ctx, func(tx *repository.Repository) error {
		for i := range users {
			if err := tx.User.Create(ctx, &users[i]); err != nil {
				return fmt.Errorf("create user %s: %w", users[i].UserID, err)
			}
		}
		return tx.Driver.CreateBatch(ctx, drivers)
	})
	if err != nil {
		return false, err
	}

	logger.Info("seed completed", zap.Int("users", len(users)), zap.Int("drivers", len(drivers)))
	return true, nil
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert initial operators and drivers into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv()
			if err != nil {
				return err
			}
			defer e.close()

			done, err := seed(cmd.Context(), repository.NewRepository(e.db), e.logger)
			if err != nil {
				return err
			}
			if done {
				fmt.Fprintln(cmd.OutOrStdout(), "seeded 5 users and 50 drivers")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "database already seeded")
			}
			return nil
		},
	}
}
