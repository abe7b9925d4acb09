package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fsm00037/terauja-backend/core/config"
	"github.com/fsm00037/terauja-backend/core/database"
	"github.com/fsm00037/terauja-backend/core/models"

	"github.com/spf13/cobra"
)

var (
	auditLimit  int
	auditAction string
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Print recent audit log entries",
	Long:  `Dumps the most recent audit log entries as JSON, optionally filtered by action.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		query := db.Order("timestamp DESC").Limit(auditLimit)
		if auditAction != "" {
			query = query.Where("action = ?", auditAction)
		}

		var entries []models.AuditLog
		if err := query.Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to read audit logs: %w", err)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	},
}

func init() {
	auditCmd.Flags().IntVar(&auditLimit, "limit", 20, "number of entries to print")
	auditCmd.Flags().StringVar(&auditAction, "action", "", "filter by action name")
	RootCmd.AddCommand(auditCmd)
}
