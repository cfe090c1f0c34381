package concentrator

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"pktfwd/pkg/regions"
)

// SX1302 drives the current concentrator family. Its forwarder reads
// global_conf.json from the configs directory, with the SPI device
// injected into the radio section.
type SX1302 struct {
	ConfigsDir    string
	ResetScript   string
	ForwarderPath string
	SPIBus        string
	ResetPin      int
	Runner        Runner
}

func (d *SX1302) Name() string {
	return "SX1302"
}

// MaterializeConfig loads the regional template, points SX130x_conf.com_dir
// at the SPI device in use, and writes the result as global_conf.json next
// to the templates.
func (d *SX1302) MaterializeConfig(region string) error {
	filename, err := regions.Filename(region)
	if err != nil {
		return err
	}

	src := filepath.Join(d.ConfigsDir, filename)
	dst := filepath.Join(d.ConfigsDir, "global_conf.json")
	log.Printf("Writing SX1302 conf from %s to %s", src, dst)

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read region config: %w", err)
	}

	var conf map[string]any
	if err := json.Unmarshal(data, &conf); err != nil {
		return fmt.Errorf("failed to parse region config %s: %w", src, err)
	}

	radio, ok := conf["SX130x_conf"].(map[string]any)
	if !ok {
		return fmt.Errorf("region config %s has no SX130x_conf object", src)
	}
	radio["com_dir"] = "/dev/" + d.SPIBus

	out, err := json.Marshal(conf)
	if err != nil {
		return fmt.Errorf("failed to marshal global conf: %w", err)
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("failed to write global conf: %w", err)
	}
	return nil
}

func (d *SX1302) Reset() {
	resetConcentrator(d.Runner, d.ResetScript, d.ResetPin)
}

func (d *SX1302) Launch() error {
	log.Printf("Starting %s", d.ForwarderPath)
	return d.Runner.Run(d.ForwarderPath)
}
