// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ColorPreset is a named brand color offered to clients.
type ColorPreset struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// DefaultColorPresets are seeded into an empty database.
var DefaultColorPresets = []ColorPreset{
	{Name: "AXE Green", Hex: "#4ccd4f"},
	{Name: "AXE Azure Blue", Hex: "#549fe9"},
	{Name: "AXE Indigo Blue", Hex: "#6870ef"},
	{Name: "AXE Ultra Violet", Hex: "#9051e4"},
	{Name: "AXE Berry Red", Hex: "#e74382"},
	{Name: "AXE Coral Red", Hex: "#e94a54"},
}
