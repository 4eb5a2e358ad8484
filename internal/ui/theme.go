package ui

import "image/color"

var (
	colBackground = color.RGBA{255, 255, 255, 255}
	colText       = color.RGBA{0, 0, 0, 255}

	colButton       = color.RGBA{0xFF, 0x6B, 0x6B, 255}
	colButtonIcon   = color.RGBA{255, 255, 255, 255}
	colButtonBorder = color.RGBA{0, 0, 0, 255}
	colDimmed       = color.RGBA{0xc8, 0xc8, 0xc8, 255}
	colHighlight    = color.RGBA{0x4E, 0xCD, 0xC4, 255}

	colTileBorder  = color.RGBA{0, 0, 0, 255}
	colMatchBorder = colHighlight

	colPlate       = color.RGBA{0xF8, 0xF3, 0xD6, 255}
	colPlateBorder = color.RGBA{0xE6, 0xD1, 0xA9, 255}

	colSmile     = color.RGBA{0xFF, 0xCC, 0x00, 255}
	colSmileHalo = color.RGBA{0xFF, 0xCC, 0x00, 0x4c}

	colProgressTrack = colDimmed
	colProgressFill  = colHighlight
	colError         = color.RGBA{0xC0, 0x20, 0x20, 255}
)

// dragAlpha fades the tile being dragged.
const dragAlpha = 0.7
