// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling for the enrollment TUI.
//
// Colors are lipgloss.AdaptiveColor values so the wizard reads on both light
// and dark terminals. NewTheme builds every style the wizard renders.
package styles
