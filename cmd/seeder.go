package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/frahmantamala/workforce-management/internal/auth"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with roles and starter accounts for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := initGormDB(sqlDB)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"attendances", "employee_roles", "employees", "roles"} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		roles := []string{auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleHR, auth.RoleEmployee}
		for _, name := range roles {
			var id int64
			if err := db.Raw("SELECT id FROM roles WHERE name = ?", name).Row().Scan(&id); err == nil {
				continue
			}
			if err := db.Exec("INSERT INTO roles (name, created_at, updated_at) VALUES (?, now(), now())", name).Error; err != nil {
				log.Fatalf("failed to insert role %s: %v", name, err)
			}
			fmt.Println("Seeded role:", name)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		accounts := []struct {
			Code       string
			Name       string
			Email      string
			Department string
			Position   string
			Roles      []string
		}{
			{"SUPER001", "Super Admin", "superadmin@company.com", "Management", "Super Administrator", []string{auth.RoleSuperAdmin}},
			{"HR001", "HR Manager", "hr@company.com", "Human Resources", "HR Manager", []string{auth.RoleHR}},
			{"REG001", "Regular Employee", "employee@company.com", "Engineering", "Software Engineer", []string{auth.RoleEmployee}},
		}

		for _, acc := range accounts {
			var employeeID int64
			err := db.Raw("SELECT id FROM employees WHERE email = ?", acc.Email).Row().Scan(&employeeID)
			if err != nil {
				insert := `INSERT INTO employees
					(employee_code, name, email, password_hash, department, position, status, join_date, created_at, updated_at)
					VALUES (?, ?, ?, ?, ?, ?, 'ACTIVE', now(), now(), now())`
				if err := db.Exec(insert, acc.Code, acc.Name, acc.Email, string(hash), acc.Department, acc.Position).Error; err != nil {
					log.Fatalf("failed to insert employee %s: %v", acc.Code, err)
				}
				if err := db.Raw("SELECT id FROM employees WHERE email = ?", acc.Email).Row().Scan(&employeeID); err != nil {
					log.Fatalf("failed to lookup employee %s after insert: %v", acc.Code, err)
				}
				fmt.Println("Seeded employee:", acc.Code, acc.Email)
			} else {
				fmt.Println("Employee already exists:", acc.Code)
			}

			for _, roleName := range acc.Roles {
				grantRole(db, employeeID, roleName)
			}
		}

		fmt.Println("Seeding complete")
	},
}

func grantRole(db *gorm.DB, employeeID int64, roleName string) {
	var roleID int64
	if err := db.Raw("SELECT id FROM roles WHERE name = ?", roleName).Row().Scan(&roleID); err != nil {
		log.Fatalf("role not found %s: %v", roleName, err)
	}

	var exists int
	if err := db.Raw("SELECT 1 FROM employee_roles WHERE employee_id = ? AND role_id = ?", employeeID, roleID).Row().Scan(&exists); err == nil {
		return
	}

	if err := db.Exec("INSERT INTO employee_roles (employee_id, role_id, created_at) VALUES (?, ?, now())", employeeID, roleID).Error; err != nil {
		log.Fatalf("failed to grant role %s to employee %d: %v", roleName, employeeID, err)
	}
}
