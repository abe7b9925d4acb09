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

var doctorJSON bool

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify the database schema",
	Long:  `Checks that every expected table exists in the configured database and reports row counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := database.Connect(cfg.Database)
		if err != nil {
			return fmt.Errorf("database connection required: %w", err)
		}

		tables := models.TableNames()
		missing, err := database.VerifySchema(db, tables)
		if err != nil {
			return fmt.Errorf("schema verification failed: %w", err)
		}

		type tableReport struct {
			Table   string `json:"table"`
			Rows    int64  `json:"rows"`
			Missing bool   `json:"missing"`
		}
		var report []tableReport
		missingSet := make(map[string]bool, len(missing))
		for _, m := range missing {
			missingSet[m] = true
		}
		for _, table := range tables {
			entry := tableReport{Table: table, Missing: missingSet[table]}
			if !entry.Missing {
				if err := db.Table(table).Count(&entry.Rows).Error; err != nil {
					return fmt.Errorf("failed to count rows in %s: %w", table, err)
				}
			}
			report = append(report, entry)
		}

		if doctorJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}
		} else {
			for _, entry := range report {
				if entry.Missing {
					fmt.Printf("%-28s MISSING\n", entry.Table)
				} else {
					fmt.Printf("%-28s %d rows\n", entry.Table, entry.Rows)
				}
			}
		}

		if len(missing) > 0 {
			return fmt.Errorf("%d table(s) missing, run the server once to migrate", len(missing))
		}
		fmt.Println("Schema OK")
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output report as JSON")
	RootCmd.AddCommand(doctorCmd)
}
