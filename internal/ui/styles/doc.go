// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling for the applock lock screen.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Purple - Selected modality, last visited node
  - Cyan - Prompts and the captured pattern path
  - Emerald - Access granted
  - Rose - Denied attempts and lockout
  - Amber - Provisioning prompt and low attempt warnings

Outcome notices pair every color with an ASCII indicator ([OK], [X], [!],
[#]) so they stay readable without color.

# Theme System (theme.go)

	theme := styles.NewTheme()
	theme.SetSize(width, height)
	tab := theme.TabActive.Render("PIN")
*/
package styles
