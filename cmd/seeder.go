package cmd

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with reference rows and demo accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		if clearData {
			clearTables(db)
		}

		seedStatuses(db)
		seedCategories(db)
		seedAccounts(db)

		fmt.Println("Seeding complete")
	},
}

func clearTables(db *sqlx.DB) {
	// Children first so foreign keys do not block the truncation.
	tables := []string{"report_logs", "reports", "articles", "feedbacks", "report_categories", "report_statuses", "users"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			log.Fatalf("failed to clear table %s: %v", table, err)
		}
	}
	fmt.Println("Cleared existing data")
}

func seedStatuses(db *sqlx.DB) {
	statuses := []string{"pending", "under review", "resolved"}
	for _, name := range statuses {
		var exists int
		if err := db.QueryRow("SELECT 1 FROM report_statuses WHERE name = $1", name).Scan(&exists); err == nil {
			continue
		}
		if _, err := db.Exec("INSERT INTO report_statuses (name) VALUES ($1)", name); err != nil {
			log.Fatalf("failed to insert status %s: %v", name, err)
		}
		fmt.Printf("Seeded report status: %s\n", name)
	}
}

func seedCategories(db *sqlx.DB) {
	categories := []string{
		"Phishing",
		"Malware",
		"Account Compromise",
		"Data Breach",
		"Lost or Stolen Device",
		"Other",
	}
	for _, name := range categories {
		var exists int
		if err := db.QueryRow("SELECT 1 FROM report_categories WHERE name = $1", name).Scan(&exists); err == nil {
			continue
		}
		if _, err := db.Exec("INSERT INTO report_categories (name, created_at, updated_at) VALUES ($1, now(), now())", name); err != nil {
			log.Fatalf("failed to insert category %s: %v", name, err)
		}
		fmt.Printf("Seeded report category: %s\n", name)
	}
}

func seedAccounts(db *sqlx.DB) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)

	accounts := []struct {
		Username   string
		Email      string
		Role       string
		Department string
	}{
		{"admin", "admin@campus.test", "admin", "IT Security Office"},
		{"itsupport", "itsupport@campus.test", "it", "IT Security Office"},
		{"student", "student@campus.test", "user", "Computer Science"},
	}

	for _, a := range accounts {
		var exists int
		if err := db.QueryRow("SELECT 1 FROM users WHERE username = $1", a.Username).Scan(&exists); err == nil {
			fmt.Printf("User %s already exists, skipping\n", a.Username)
			continue
		}
		_, err := db.Exec(
			"INSERT INTO users (username, email, password_hash, role, department, is_active, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, true, now(), now())",
			a.Username, a.Email, string(hash), a.Role, a.Department,
		)
		if err != nil {
			log.Fatalf("failed to insert user %s: %v", a.Username, err)
		}
		fmt.Printf("Seeded %s account: %s\n", a.Role, a.Username)
	}
}
