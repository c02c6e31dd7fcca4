package retroboy

import (
	"github.com/32bitkid/retroboy/filter"
	"github.com/32bitkid/retroboy/palette"
)

// Preset keys, as stored in the user's preferences.
const (
	PresetGameBoyCamera = "nintendo_gameboy_camera"
	PresetGameBoyScreen = "nintendo_gameboy_screen"
	PresetCommodore64   = "commodore_64"
	PresetAtkinson      = "atkinson"
	PresetHalftone      = "halftone"

	DefaultPreset = PresetGameBoyCamera
)

// Presets lists every preset key in display order.
var Presets = []string{
	PresetGameBoyCamera,
	PresetGameBoyScreen,
	PresetCommodore64,
	PresetAtkinson,
	PresetHalftone,
}

var presetLabels = map[string]string{
	PresetGameBoyCamera: "Nintendo Game Boy Camera",
	PresetGameBoyScreen: "Nintendo Game Boy Screen",
	PresetCommodore64:   "Commodore 64",
	PresetAtkinson:      "Atkinson",
	PresetHalftone:      "Halftone",
}

func IsPreset(key string) bool {
	_, ok := presetLabels[key]
	return ok
}

// PresetLabel is the human readable name of a preset, or "" for unknown keys.
func PresetLabel(key string) string {
	return presetLabels[key]
}

// FilterFor builds the filter a preset key selects. Unknown keys get the
// default preset.
func FilterFor(key string) filter.Filter {
	switch key {
	case PresetGameBoyScreen:
		return mustOrdered(palette.Defaults.GameBoyScreen)
	case PresetCommodore64:
		return filter.NewDirect(palette.Defaults.Commodore64)
	case PresetAtkinson:
		return filter.NewAtkinson()
	case PresetHalftone:
		return filter.NewHalftone(filter.DefaultCellSize)
	}
	return mustOrdered(palette.Defaults.GameBoyCamera)
}

func mustOrdered(p palette.Palette) filter.Ordered {
	f, err := filter.NewOrdered(p, filter.DefaultBayerSize, filter.DefaultSpread)
	if err != nil {
		panic(err)
	}
	return f
}

// NextPreset is the preset the quick toggle switches to from key:
// atkinson, then halftone, then the Game Boy camera, then back to atkinson.
func NextPreset(key string) string {
	switch key {
	case PresetAtkinson:
		return PresetHalftone
	case PresetHalftone:
		return PresetGameBoyCamera
	}
	return PresetAtkinson
}
