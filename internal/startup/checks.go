// Package startup runs the environment checks shown on the splash screen
// before the rest of the UI is allowed to load.
package startup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CheckState is the lifecycle of one startup check.
type CheckState int

const (
	CheckPending CheckState = iota
	CheckRunning
	CheckPassed
	CheckFailed
)

// Check is one named startup check with its outcome.
type Check struct {
	Name   string
	State  CheckState
	Detail string
}

// Pass marks the check as passed with a detail message.
func (c *Check) Pass(detail string) {
	c.State = CheckPassed
	c.Detail = detail
}

// Fail marks the check as failed with a reason.
func (c *Check) Fail(reason string) {
	c.State = CheckFailed
	c.Detail = reason
}

// Checks holds all startup checks.
type Checks struct {
	Token Check
	CLI   Check
}

// NewChecks returns the pending check set.
func NewChecks() Checks {
	return Checks{
		Token: Check{Name: "PULUMI_ACCESS_TOKEN"},
		CLI:   Check{Name: "Pulumi CLI"},
	}
}

// AllComplete reports whether every check has finished, pass or fail.
func (c Checks) AllComplete() bool {
	done := func(ch Check) bool { return ch.State == CheckPassed || ch.State == CheckFailed }
	return done(c.Token) && done(c.CLI)
}

// AllPassed reports whether every check passed.
func (c Checks) AllPassed() bool {
	return c.Token.State == CheckPassed && c.CLI.State == CheckPassed
}

// AnyFailed reports whether any check failed.
func (c Checks) AnyFailed() bool {
	return c.Token.State == CheckFailed || c.CLI.State == CheckFailed
}

// MaskToken shortens a token for display, keeping the prefix and last four
// characters.
func MaskToken(token string) string {
	if len(token) > 12 {
		return token[:7] + "..." + token[len(token)-4:]
	}
	return "****"
}

// CheckToken verifies that PULUMI_ACCESS_TOKEN is set and non-empty.
func CheckToken() Check {
	check := Check{Name: "PULUMI_ACCESS_TOKEN"}
	token, ok := os.LookupEnv("PULUMI_ACCESS_TOKEN")
	switch {
	case !ok:
		check.Fail("PULUMI_ACCESS_TOKEN not set")
	case token == "":
		check.Fail("PULUMI_ACCESS_TOKEN is empty")
	default:
		check.Pass("Token found: " + MaskToken(token))
	}
	return check
}

// CheckCLI verifies the pulumi binary is reachable and reports its version.
func CheckCLI(ctx context.Context) Check {
	check := Check{Name: "Pulumi CLI"}

	out, err := exec.CommandContext(ctx, "pulumi", "version").Output()
	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			check.Fail("CLI error: " + strings.TrimSpace(string(exitErr.Stderr)))
		case errors.Is(err, exec.ErrNotFound):
			check.Fail("Pulumi CLI not found in PATH")
		default:
			check.Fail(fmt.Sprintf("Failed to run CLI: %v", err))
		}
		return check
	}

	check.Pass("Version: " + strings.TrimSpace(string(out)))
	return check
}

// DefaultOrg asks the pulumi CLI for the configured default organization.
// Returns the empty string when none is set or the CLI is unavailable.
func DefaultOrg(ctx context.Context) string {
	out, err := exec.CommandContext(ctx, "pulumi", "org", "get-default").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// SetDefaultOrg records a new default organization through the pulumi CLI.
// Fire and forget; a failure only matters to the next session and is not
// worth interrupting this one.
func SetDefaultOrg(org string) {
	go func() {
		_ = exec.Command("pulumi", "org", "set-default", org).Run()
	}()
}
