package palette

// Defaults are the curated display palettes the presets bind to.
var Defaults = struct {
	GameBoyCamera Palette
	GameBoyScreen Palette
	Commodore64   Palette
	Monochrome    Palette
}{
	GameBoyCamera: mustParse(
		"#000000",
		"#555555",
		"#aaaaaa",
		"#ffffff",
	),
	GameBoyScreen: mustParse(
		"#0f380f",
		"#306230",
		"#8bac0f",
		"#9bbc0f",
	),
	// Pepto's measured VIC-II colors, in register order.
	Commodore64: mustParse(
		"#000000", // black
		"#ffffff", // white
		"#68372b", // red
		"#70a4b2", // cyan
		"#6f3d86", // purple
		"#588d43", // green
		"#352879", // blue
		"#b8c76f", // yellow
		"#6f4f25", // orange
		"#433900", // brown
		"#9a6759", // light red
		"#444444", // dark grey
		"#6c6c6c", // grey
		"#9ad284", // light green
		"#6c5eb5", // light blue
		"#959595", // light grey
	),
	Monochrome: mustParse(
		"#000000",
		"#ffffff",
	),
}
