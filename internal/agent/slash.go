package agent

import (
	"strings"

	"lazypulumi/internal/pulumi"
)

// SlashFilter extracts the picker filter from an input buffer: the text
// after the last '/'. The picker only shows while that text runs to the end
// of the buffer with no whitespace, i.e. the user is still typing the
// command word.
func SlashFilter(input string) (filter string, active bool) {
	idx := strings.LastIndex(input, "/")
	if idx < 0 {
		return "", false
	}
	rest := input[idx+1:]
	if strings.ContainsAny(rest, " \t\n") {
		return "", false
	}
	return rest, true
}

// MatchCommands returns the commands whose name or description contains the
// filter, case-insensitively. An empty filter matches everything.
func MatchCommands(commands []pulumi.SlashCommand, filter string) []pulumi.SlashCommand {
	filter = strings.ToLower(filter)
	var matched []pulumi.SlashCommand
	for _, cmd := range commands {
		if strings.Contains(strings.ToLower(cmd.Name), filter) ||
			strings.Contains(strings.ToLower(cmd.Description), filter) {
			matched = append(matched, cmd)
		}
	}
	return matched
}

// InsertCommand replaces the partial command word at the end of the input
// with the command's full name and a trailing space, ready for more typing.
func InsertCommand(input string, cmd pulumi.SlashCommand) string {
	idx := strings.LastIndex(input, "/")
	if idx < 0 {
		return input
	}
	return input[:idx] + "/" + cmd.Name + " "
}
