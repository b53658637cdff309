// Package config loads the host settings of rline.
//
// Settings come from three layers, each overriding the one before:
//
//	┌──────────────────────────────┐
//	│  3. Environment (RLINE_*)    │  ← Highest priority
//	├──────────────────────────────┤
//	│  2. config.toml              │  ← $RLINE_CONFIG or ~/.config/rline/config.toml
//	├──────────────────────────────┤
//	│  1. Built-in defaults        │  ← Lowest priority
//	└──────────────────────────────┘
//
// A missing config file is not an error. Key bindings are not configured
// here; they live in the inputrc file that ResolveInputrc locates.
package config
