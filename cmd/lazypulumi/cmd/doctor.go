package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lazypulumi/internal/logging"
	"lazypulumi/internal/startup"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment without starting the UI",
	Long:  "Run the same checks the splash screen runs and report the results.",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(_ *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	// No alternate screen here, so records can go straight to stderr.
	logger := logging.New(logging.Config{
		Level:  settings.LogLevel,
		Filter: settings.LogFilter,
		Output: os.Stderr,
	}).WithComponent("doctor")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Println("Checking environment...")
	fmt.Println()

	checks := []startup.Check{
		startup.CheckToken(),
		startup.CheckCLI(ctx),
	}
	failed := false
	for _, c := range checks {
		icon := "✓"
		if c.State != startup.CheckPassed {
			icon = "✗"
			failed = true
			logger.Warn("check failed", "check", c.Name, "detail", c.Detail)
		} else {
			logger.Debug("check passed", "check", c.Name, "detail", c.Detail)
		}
		fmt.Printf("  %s %-20s %s\n", icon, c.Name, c.Detail)
	}

	if org := startup.DefaultOrg(ctx); org != "" {
		fmt.Printf("  ✓ %-20s %s\n", "Default org", org)
	} else {
		fmt.Printf("  ○ %-20s %s\n", "Default org", "not set (optional)")
	}

	if failed {
		return fmt.Errorf("environment checks failed")
	}
	fmt.Println()
	fmt.Println("All checks passed.")
	return nil
}
