// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// BRAND COLORS
// =============================================================================

// Wolfpack red (#990000) - titles, selection, the acknowledge panel
var Red = lipgloss.AdaptiveColor{Light: "#990000", Dark: "#CC0000"}

// RedDeep - panel backgrounds
var RedDeep = lipgloss.AdaptiveColor{Light: "#7A0000", Dark: "#660000"}

// Blue (#0051A2) - progress and informational accents
var Blue = lipgloss.AdaptiveColor{Light: "#0051A2", Dark: "#4A90D9"}

// =============================================================================
// SEMANTIC COLORS
// =============================================================================

// Emerald - success
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - errors and failure states
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Amber - warnings and notices
var Amber = lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#FBBF24"}

// =============================================================================
// TEXT COLORS
// =============================================================================

// TextPrimary - main body text
var TextPrimary = lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F9FAFB"}

// TextMuted - hints and disabled actions
var TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

// TextInverse - text on colored backgrounds
var TextInverse = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

// Overlay - borders
var Overlay = lipgloss.AdaptiveColor{Light: "#D4D4D4", Dark: "#45475A"}
