// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Config rendering tests

package tests

import (
	"strings"
	"testing"

	"github.com/sony-level/nixpkgs-review/internal/buildenv"
)

func TestRenderConfig(t *testing.T) {
	tests := []struct {
		name string
		opts buildenv.Options
		want string
	}{
		{
			name: "aliases option off",
			opts: buildenv.Options{AllowAliases: false},
			want: "{\n  allowUnfree = true;\n  allowBroken = true;\n}\n",
		},
		{
			name: "aliases option on emits disable directive",
			opts: buildenv.Options{AllowAliases: true},
			want: "{\n  allowUnfree = true;\n  allowBroken = true;\n  allowAliases = false;\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildenv.RenderConfig(tt.opts)
			if got != tt.want {
				t.Errorf("RenderConfig() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderConfig_AlwaysAllowsUnfreeAndBroken(t *testing.T) {
	for _, aliases := range []bool{false, true} {
		got := buildenv.RenderConfig(buildenv.Options{AllowAliases: aliases})
		for _, line := range []string{"allowUnfree = true;", "allowBroken = true;"} {
			if !strings.Contains(got, line) {
				t.Errorf("RenderConfig(aliases=%v) missing %q", aliases, line)
			}
		}
	}
}

func TestRenderConfig_NoAliasLineWhenDisabled(t *testing.T) {
	got := buildenv.RenderConfig(buildenv.Options{})
	if strings.Contains(got, "allowAliases") {
		t.Errorf("RenderConfig() should omit allowAliases, got %q", got)
	}
}

func TestStateString(t *testing.T) {
	tests := map[buildenv.State]string{
		buildenv.StateUnentered: "unentered",
		buildenv.StateActive:    "active",
		buildenv.StateExited:    "exited",
		buildenv.State(9):       "State(9)",
	}
	for state, want := range tests {
		if got := state.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(state), got, want)
		}
	}
}
