// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewTheme_ForcedModes(t *testing.T) {
	dark := NewTheme("dark")
	if !dark.IsDark || dark.GlamourStyle() != "dark" {
		t.Errorf("dark theme: IsDark=%v style=%s", dark.IsDark, dark.GlamourStyle())
	}

	light := NewTheme("light")
	if light.IsDark || light.GlamourStyle() != "light" {
		t.Errorf("light theme: IsDark=%v style=%s", light.IsDark, light.GlamourStyle())
	}
}

func TestTheme_BubbleWidth(t *testing.T) {
	theme := NewTheme("dark")

	tests := []struct {
		width int
		want  int
	}{
		{200, 100},
		{80, 72},
		{10, 20},
	}
	for _, tc := range tests {
		theme.SetSize(tc.width, 40)
		if got := theme.BubbleWidth(); got != tc.want {
			t.Errorf("BubbleWidth() at %d = %d, want %d", tc.width, got, tc.want)
		}
	}
}
