package concentrator

import (
	"log"
	"os"
	"strconv"

	"pktfwd/pkg/config"
	"pktfwd/pkg/retry"
)

// Driver abstracts one concentrator chip family. A Driver is selected
// once from the detection result and carries every family-specific path,
// so nothing downstream branches on chip type again.
type Driver interface {
	Name() string

	// MaterializeConfig writes the effective global_conf.json for the
	// given region. Called once, before the first launch attempt; any
	// failure is a deployment defect and must not be retried.
	MaterializeConfig(region string) error

	// Reset power-cycles the concentrator. Safe to repeat; failures are
	// not reported because they only matter if the forwarder then fails
	// to start, which the retry loop already handles.
	Reset()

	// Launch runs the packet forwarder and blocks until it exits. Only a
	// failure to start the process is an error.
	Launch() error
}

// Select builds the Driver for the detected chip family.
func Select(isSX1302 bool, cfg *config.Config, r Runner) Driver {
	if isSX1302 {
		return &SX1302{
			ConfigsDir:    cfg.SX1302ConfigsDir,
			ResetScript:   cfg.SX1302ResetScript,
			ForwarderPath: cfg.SX1302ForwarderPath,
			SPIBus:        cfg.SPIBus,
			ResetPin:      cfg.ResetPin,
			Runner:        r,
		}
	}
	return &SX1301{
		RootDir:      cfg.RootDir,
		ConfigsDir:   cfg.SX1301ConfigsDir,
		ResetScript:  cfg.SX1301ResetScript,
		ForwarderDir: cfg.SX1301ForwarderDir,
		SPIBus:       cfg.SPIBus,
		ResetPin:     cfg.ResetPin,
		Runner:       r,
	}
}

// Supervise resets the concentrator and starts the packet forwarder,
// retrying the full reset+launch sequence per the policy. Returns nil
// once a launch attempt succeeds, or the exhaustion error.
func Supervise(d Driver, pol retry.Policy) error {
	return pol.Do(func() error {
		d.Reset()
		return d.Launch()
	})
}

// resetConcentrator runs the reset script with the stop/start sequence,
// or pulses the reset pin directly when the script is not installed.
func resetConcentrator(r Runner, script string, pin int) {
	if _, err := os.Stat(script); os.IsNotExist(err) {
		log.Printf("Reset script %s not installed, pulsing reset pin %d directly", script, pin)
		if err := pulseResetPin(pin); err != nil {
			log.Printf("Failed to pulse reset pin %d: %v", pin, err)
		}
		return
	}

	// The script expects the pin as a string argument.
	pinArg := strconv.Itoa(pin)
	log.Printf("Executing %s with reset pin %s", script, pinArg)

	if err := r.Run(script, "stop", pinArg); err != nil {
		log.Printf("Failed to run %s stop: %v", script, err)
	}
	if err := r.Run(script, "start", pinArg); err != nil {
		log.Printf("Failed to run %s start: %v", script, err)
	}
}
