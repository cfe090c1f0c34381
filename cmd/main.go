package main

import (
	"log"
	"time"

	"pktfwd/pkg/concentrator"
	"pktfwd/pkg/config"
	"pktfwd/pkg/diagnostics"
	"pktfwd/pkg/logger"
	"pktfwd/pkg/regions"
	"pktfwd/pkg/reporting"
	"pktfwd/pkg/retry"
)

const diagnosticsInterval = 30 * time.Second

func main() {
	// Initialize logger first to capture all logs
	logger.Init()

	log.Println("Starting")

	// Initialize config
	if err := config.Init(); err != nil {
		log.Fatalf("Failed to initialize config: %v (supported regions: %v)", err, regions.Supported())
	}
	cfg := config.Get()

	if err := reporting.Init(cfg.SentryDSN, cfg.DeviceID, cfg.AppName); err != nil {
		log.Printf("Failed to initialize crash reporting: %v", err)
	}

	awaitSystemReady(cfg.StartupDelay)

	runner := concentrator.NewRunner()
	driver := concentrator.Select(concentrator.IsSX1302(runner, cfg.ChipIDPath, cfg.SPIBus), cfg, runner)
	log.Printf("Detected %s concentrator on %s", driver.Name(), cfg.SPIBus)

	// The forwarder reads global_conf.json at launch, so this must
	// complete before the first attempt. Never retried: a failure here
	// means a broken deployment, not flaky hardware.
	if err := driver.MaterializeConfig(cfg.Region); err != nil {
		log.Fatalf("Failed to write global_conf.json for region %s: %v", cfg.Region, err)
	}

	if err := diagnostics.Write(cfg.DiagnosticsPath, false); err != nil {
		log.Printf("Failed to write diagnostics: %v", err)
	}

	// Keep the diagnostics flag tracking the real process state while
	// the supervisor blocks in the launch call below.
	go refreshDiagnostics(cfg.DiagnosticsPath)

	policy := retry.Policy{
		MaxAttempts: cfg.MaxLaunchAttempts,
		Backoff:     cfg.LaunchBackoff,
	}
	if err := concentrator.Supervise(driver, policy); err != nil {
		diagnostics.Write(cfg.DiagnosticsPath, false)
		log.Fatalf("Failed to start packet forwarder: %v", err)
	}

	log.Println("Packet forwarder exited")
	if err := diagnostics.Write(cfg.DiagnosticsPath, false); err != nil {
		log.Printf("Failed to write diagnostics: %v", err)
	}
}

// awaitSystemReady delays startup so the SPI device and GPIO exports
// settle before the concentrator is touched.
func awaitSystemReady(delay time.Duration) {
	log.Printf("Waiting %s for systems to be ready", delay)
	time.Sleep(delay)
	log.Println("System now ready")
}

func refreshDiagnostics(path string) {
	ticker := time.NewTicker(diagnosticsInterval)
	defer ticker.Stop()

	for range ticker.C {
		if err := diagnostics.Write(path, diagnostics.ForwarderRunning()); err != nil {
			log.Printf("Failed to write diagnostics: %v", err)
		}
	}
}
