//go:build tinygo

package device

import (
	"image/color"
	"machine"
	"strconv"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/max72xx"
	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// digitGlyphs is a 3x5 font for the matrix score, one byte per row with
// the glyph in the low three bits.
var digitGlyphs = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b010, 0b010, 0b010}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// hardwareDisplay drives the SSD1306 OLED panel and the MAX7219 8x8
// matrix together.
type hardwareDisplay struct {
	oled   ssd1306.Device
	matrix max72xx.Device
}

func newHardwareDisplay(i2c drivers.I2C, spi drivers.SPI, matrixCS machine.Pin, oledAddr uint16) (*hardwareDisplay, error) {
	oled := ssd1306.NewI2C(i2c)
	oled.Configure(ssd1306.Config{
		Address: oledAddr,
		Width:   128,
		Height:  64,
	})
	oled.ClearDisplay()

	matrixCS.Configure(machine.PinConfig{Mode: machine.PinOutput})
	matrix := max72xx.NewDevice(spi, matrixCS)
	matrix.Configure()
	matrix.StopDisplayTest()
	matrix.SetDecodeMode(0)
	matrix.SetScanLimit(8)
	matrix.SetIntensity(2)
	matrix.StopShutdownMode()

	d := &hardwareDisplay{oled: oled, matrix: matrix}
	d.ClearMatrix()
	return d, nil
}

func (d *hardwareDisplay) DrawScoreboard(score, level, lines int) {
	d.drawOLED(score, level, lines)
	d.drawMatrix(score, level)
}

func (d *hardwareDisplay) drawOLED(score, level, lines int) {
	d.oled.ClearBuffer()
	font := &proggy.TinySZ8pt7b
	tinyfont.WriteLine(&d.oled, font, 0, 10, "Dentist Tetris", white)
	tinyfont.WriteLine(&d.oled, font, 0, 26, "Score: "+strconv.Itoa(score), white)
	tinyfont.WriteLine(&d.oled, font, 0, 42, "Level: "+strconv.Itoa(level), white)
	tinyfont.WriteLine(&d.oled, font, 0, 58, "Lines: "+strconv.Itoa(lines), white)
	d.oled.Display()
}

// drawMatrix shows the last two score digits and one level pip per row
// 7 pixel.
func (d *hardwareDisplay) drawMatrix(score, level int) {
	var rows [8]uint8

	tens := score % 100 / 10
	ones := score % 10
	for row := 0; row < 5; row++ {
		rows[row] = digitGlyphs[tens][row]<<5 | digitGlyphs[ones][row]<<1
	}

	pips := level
	if pips > 8 {
		pips = 8
	}
	for i := 0; i < pips; i++ {
		rows[7] |= 1 << (7 - i)
	}

	for row := 0; row < 8; row++ {
		d.matrix.WriteByte(max72xx.REG_DIGIT0+byte(row), rows[row])
	}
}

func (d *hardwareDisplay) DrawFarewell() {
	d.oled.ClearBuffer()
	font := &proggy.TinySZ8pt7b
	tinyfont.WriteLine(&d.oled, font, 0, 10, "Trifaze", white)
	tinyfont.WriteLine(&d.oled, font, 0, 26, "Dentist Tetris", white)
	d.oled.Display()
}

func (d *hardwareDisplay) ClearMatrix() {
	for row := 0; row < 8; row++ {
		d.matrix.WriteByte(max72xx.REG_DIGIT0+byte(row), 0)
	}
}
