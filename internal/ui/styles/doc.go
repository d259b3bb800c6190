// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the alice TUI.

This package defines the color palette and theme used throughout the
application. All colors use Lip Gloss AdaptiveColor for automatic
light/dark terminal detection.

# Color System (colors.go)

## Accent Colors

  - Purple - Primary accent for the assistant, selections, and focus
  - Cyan - Brand color for the user, commands, and highlights
  - Emerald - Success states and finished processing
  - Amber - Warnings and in-flight processing
  - Rose - Errors and failed processing

## Surface Colors

Layered surface system for depth:

	Surface       - Main background
	SurfaceDim    - Subtle backgrounds (headers, status bars)
	SurfaceBright - Elevated elements (selections, chips, popups)

## Text Colors

Hierarchical text color system:

	Text      - Main content text
	TextMuted - Supporting text
	TextFaint - De-emphasized text and borders

# Theme System (theme.go)

The Theme struct bundles the pre-built Lip Gloss styles every view
needs, keyed off the terminal's detected capabilities:

	theme := styles.New()
	if theme.IsDark {
		// Dark terminal detected
	}
	label := theme.AssistantLabel.Render("Alice")

StatusStyle maps a video processing status string to its color:

	badge := theme.StatusStyle(video.Status).Render(video.Status)
*/
package styles
