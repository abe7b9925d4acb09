package cmd

import (
	"errors"
	"fmt"
	"log"

	"github.com/fsm00037/terauja-backend/core/config"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	adminPassword string
	adminName     string
)

// createAdminCmd represents the create-admin command
var createAdminCmd = &cobra.Command{
	Use:   "create-admin <email>",
	Short: "Create a superadmin account",
	Long:  `Creates the platform superadmin account for the given email if one does not exist yet.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		adminEmail := args[0]

		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return err
		}
		if err := db.AutoMigrate(&models.Psychologist{}); err != nil {
			return err
		}

		var existing models.Psychologist
		err = db.Where("role = ?", models.RoleSuperadmin).First(&existing).Error
		if err == nil {
			fmt.Printf("Superadmin already exists: %s\n", existing.Email)
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		superadmin := models.Psychologist{
			Name:     adminName,
			Email:    adminEmail,
			Password: string(hash),
			Role:     models.RoleSuperadmin,
			Schedule: "N/A",
		}
		if err := db.Create(&superadmin).Error; err != nil {
			return err
		}

		fmt.Println("Superadmin created successfully!")
		fmt.Printf("Email: %s\n", superadmin.Email)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "superadmin123", "superadmin password")
	createAdminCmd.Flags().StringVar(&adminName, "name", "Super Admin", "superadmin display name")
	RootCmd.AddCommand(createAdminCmd)
}
