package concentrator

import (
	"fmt"
	"strconv"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const resetPulseWidth = 100 * time.Millisecond

// pulseResetPin toggles the concentrator reset line directly, for images
// that ship without the vendor reset script. Same sequence the script
// performs: drive the pin high briefly, then release it low.
func pulseResetPin(pinNum int) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("failed to initialize GPIO host: %w", err)
	}

	pin := gpioreg.ByName(strconv.Itoa(pinNum))
	if pin == nil {
		return fmt.Errorf("reset pin %d not found", pinNum)
	}

	if err := pin.Out(gpio.High); err != nil {
		return fmt.Errorf("failed to drive reset pin high: %w", err)
	}
	time.Sleep(resetPulseWidth)
	if err := pin.Out(gpio.Low); err != nil {
		return fmt.Errorf("failed to release reset pin: %w", err)
	}
	time.Sleep(resetPulseWidth)

	return nil
}
