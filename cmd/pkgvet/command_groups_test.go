//go:build integration

package main

import (
	"testing"

	"github.com/spf13/cobra"
)

// TestCommandGroupAssignments verifies that commands are assigned to appropriate groups
func TestCommandGroupAssignments(t *testing.T) {
	tests := []struct {
		name            string
		commandName     string
		expectedGroup   string
		shouldHaveGroup bool
	}{
		{name: "validate command in validation group", commandName: "validate", expectedGroup: "validation", shouldHaveGroup: true},
		{name: "watch command in validation group", commandName: "watch", expectedGroup: "validation", shouldHaveGroup: true},
		{name: "rules command in utilities group", commandName: "rules", expectedGroup: "utilities", shouldHaveGroup: true},

		// Commands without groups (intentionally)
		{name: "version command without group", commandName: "version", expectedGroup: "", shouldHaveGroup: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var foundCmd *cobra.Command
			for _, cmd := range rootCmd.Commands() {
				if cmd.Name() == tt.commandName {
					foundCmd = cmd
					break
				}
			}
			if foundCmd == nil {
				t.Fatalf("Command %q not found in root command", tt.commandName)
			}

			if tt.shouldHaveGroup {
				if foundCmd.GroupID != tt.expectedGroup {
					t.Errorf("Command %q should be in group %q, but is in group %q", tt.commandName, tt.expectedGroup, foundCmd.GroupID)
				}
			} else if foundCmd.GroupID != "" {
				t.Errorf("Command %q should not have a group, but is in group %q", tt.commandName, foundCmd.GroupID)
			}
		})
	}
}

// TestCommandGroupsExist verifies that every group a command uses is registered
func TestCommandGroupsExist(t *testing.T) {
	groups := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groups[g.ID] = true
	}
	for _, cmd := range rootCmd.Commands() {
		if cmd.GroupID != "" && !groups[cmd.GroupID] {
			t.Errorf("Command %q uses unregistered group %q", cmd.Name(), cmd.GroupID)
		}
	}
}
