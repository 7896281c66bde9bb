package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		db, err := initGorm(sqlDB)
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		hrEmail := "hr@mail.com"
		var exists int
		hrExists := false
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", hrEmail).Row().Scan(&exists); err == nil {
			fmt.Println("hr user already exists")
			hrExists = true
		}

		if !hrExists {
			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, company_name, email_verified_at, is_password_changed, created_at, updated_at) VALUES (?, ?, ?, 'HR', 'Acme Corp', now(), true, now(), now())",
				hrEmail, "Hana HR", string(hash)).Error; err != nil {
				log.Fatalf("failed to insert hr user: %v", err)
			}
			fmt.Println("Seeded HR user:", hrEmail)
		}

		var hrID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", hrEmail).Row().Scan(&hrID); err != nil {
			log.Fatalf("failed to lookup hr user id: %v", err)
		}

		employeeEmail := "employee@mail.com"
		employeeExists := false
		if err := db.Raw("SELECT 1 FROM users WHERE email = ?", employeeEmail).Row().Scan(&exists); err == nil {
			fmt.Println("employee user already exists")
			employeeExists = true
		}

		if !employeeExists {
			if err := db.Exec(
				"INSERT INTO users (email, name, password_hash, role, hr_id, employee_id, company_name, email_verified_at, is_password_changed, created_at, updated_at) VALUES (?, ?, ?, 'EMPLOYEE', ?, 'ACM0001', 'Acme Corp', now(), true, now(), now())",
				employeeEmail, "Eko Employee", string(hash), hrID).Error; err != nil {
				log.Fatalf("failed to insert employee user: %v", err)
			}
			fmt.Println("Seeded employee user:", employeeEmail)
		}

		var employeeID int64
		if err := db.Raw("SELECT id FROM users WHERE email = ?", employeeEmail).Row().Scan(&employeeID); err != nil {
			log.Fatalf("failed to lookup employee user id: %v", err)
		}

		year := time.Now().Year()
		if err := db.Raw("SELECT 1 FROM time_off_allocations WHERE user_id = ?", employeeID).Row().Scan(&exists); err != nil {
			if err := db.Exec(
				"INSERT INTO time_off_allocations (user_id, year, paid_time_off_days, sick_leave_days, unpaid_leaves_days, created_at, updated_at) VALUES (?, ?, 20, 10, 0, now(), now())",
				employeeID, year).Error; err != nil {
				log.Fatalf("failed to insert allocation: %v", err)
			}
			fmt.Println("Seeded allocation for employee:", employeeEmail)
		}

		fmt.Println("Seeding done. Login with", hrEmail, "or", employeeEmail, "and password:", password)
	},
}
