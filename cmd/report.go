package cmd

import (
	"errors"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	config "taskboard.com/taskboard/internal/configs"
	"taskboard.com/taskboard/internal/session"
)

var reportToken string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print a signed-in user's task report",
	Long: "Prints task counts per column and per priority as JSON for the user signed in " +
		"under --token (the token returned by POST /session)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if err := checkReportConfig(cfg, reportToken); err != nil {
			return err
		}

		b := newBackend(cfg)
		defer b.close()

		ctx := session.WithToken(cmd.Context(), reportToken)
		report, err := b.boards.Report(ctx)
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}

		out, err := sonic.ConfigStd.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}

// checkReportConfig rejects setups where report can never find a session: the
// memory driver starts empty in every process, and a session is looked up by
// its token.
func checkReportConfig(cfg config.Config, token string) error {
	if cfg.StorageDriver == config.DriverMemory {
		return fmt.Errorf("report reads sessions stored by a running server; STORAGE_DRIVER=%s keeps nothing between processes, use %s or %s",
			config.DriverMemory, config.DriverSQLite, config.DriverRedis)
	}
	if token == "" {
		return errors.New("report needs --token, the session token returned by POST /session")
	}
	return nil
}

func init() {
	reportCmd.Flags().StringVar(&reportToken, "token", "", "session token of the user to report on")
	rootCmd.AddCommand(reportCmd)
}
