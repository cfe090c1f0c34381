package concentrator

import "log"

// IsSX1302 reports whether the board carries an SX1302-family chip by
// running the chip-id utility against the SPI device. Exit status 0 means
// SX1302; any nonzero exit, missing utility or timeout classifies the
// board as SX1301. Running the utility briefly resets the concentrator as
// a side effect.
func IsSX1302(r Runner, chipIDPath, spiBus string) bool {
	if err := r.Check(chipIDPath, "-d", "/dev/"+spiBus); err != nil {
		log.Printf("Chip ID probe on /dev/%s failed (%v), assuming SX1301", spiBus, err)
		return false
	}
	return true
}
