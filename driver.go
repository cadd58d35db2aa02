package bardrive

// Driver abstracts the LED transport (MAX7219 chain over SPI, HT16K33 over
// I2C, an addressable strip, or a fake for tests). Implementations buffer
// pixel state internally; nothing reaches the hardware until Show.
//
// Out-of-range coordinates are the driver's responsibility: implementations
// may ignore them, but BarMeter never passes an address outside the geometry
// reported by the query methods.
type Driver interface {
	// SetLed sets one physical LED in the buffer.
	SetLed(device, row, col int, on bool)
	// GetLed reads the last buffered state of one physical LED.
	GetLed(device, row, col int) bool

	// Show flushes the buffer of every device to the hardware.
	Show()
	// ShowDevice flushes a single device where the transport allows it;
	// chained transports may flush the whole chain.
	ShowDevice(device int)

	// MaxRows reports the row capacity of one device.
	MaxRows(device int) int
	// MaxColumns reports the column capacity of a device. Columns never
	// spill across devices, so the count is uniform over the chain.
	MaxColumns() int
	// DevCount reports how many devices are on the chain.
	DevCount() int
	// MaxSegments reports how many linear outputs one device offers
	// (rows x columns).
	MaxSegments(device int) int
}
