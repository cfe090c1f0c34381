package concentrator

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"pktfwd/pkg/regions"
)

// SX1301 drives the legacy concentrator family. Its forwarder reads
// global_conf.json from the tooling root, and the binary is built per
// SPI bus.
type SX1301 struct {
	RootDir      string
	ConfigsDir   string
	ResetScript  string
	ForwarderDir string
	SPIBus       string
	ResetPin     int
	Runner       Runner
}

func (d *SX1301) Name() string {
	return "SX1301"
}

// MaterializeConfig copies the regional template verbatim to the
// forwarder's global_conf.json.
func (d *SX1301) MaterializeConfig(region string) error {
	filename, err := regions.Filename(region)
	if err != nil {
		return err
	}

	src := filepath.Join(d.ConfigsDir, filename)
	dst := filepath.Join(d.RootDir, "global_conf.json")
	log.Printf("Copying SX1301 conf from %s to %s", src, dst)

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read region config: %w", err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write global conf: %w", err)
	}
	return nil
}

func (d *SX1301) Reset() {
	resetConcentrator(d.Runner, d.ResetScript, d.ResetPin)
}

func (d *SX1301) Launch() error {
	path := filepath.Join(d.ForwarderDir, "lora_pkt_fwd_"+d.SPIBus)
	log.Printf("Starting %s", path)
	return d.Runner.Run(path)
}
