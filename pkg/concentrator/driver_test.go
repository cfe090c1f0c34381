package concentrator

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pktfwd/pkg/config"
	"pktfwd/pkg/retry"
)

// fakeRunner records invocations instead of spawning processes.
type fakeRunner struct {
	runCalls   [][]string
	checkCalls [][]string
	runErr     error
	checkErr   error
}

func (f *fakeRunner) Run(name string, args ...string) error {
	f.runCalls = append(f.runCalls, append([]string{name}, args...))
	return f.runErr
}

func (f *fakeRunner) Check(name string, args ...string) error {
	f.checkCalls = append(f.checkCalls, append([]string{name}, args...))
	return f.checkErr
}

// writeScript drops an executable stub so resetConcentrator takes the
// script path rather than the GPIO fallback.
func writeScript(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reset_lgw.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("failed to write script stub: %v", err)
	}
	return path
}

func TestReset_RunsStopThenStart(t *testing.T) {
	runner := &fakeRunner{}
	d := &SX1301{ResetScript: writeScript(t), ResetPin: 17, Runner: runner}

	d.Reset()

	if len(runner.runCalls) != 2 {
		t.Fatalf("reset ran %d commands, want 2", len(runner.runCalls))
	}
	wantFirst := []string{d.ResetScript, "stop", "17"}
	wantSecond := []string{d.ResetScript, "start", "17"}
	for i, want := range [][]string{wantFirst, wantSecond} {
		got := runner.runCalls[i]
		if len(got) != len(want) {
			t.Fatalf("call %d = %v, want %v", i, got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Errorf("call %d arg %d = %q, want %q", i, j, got[j], want[j])
			}
		}
	}
}

func TestReset_IgnoresScriptFailures(t *testing.T) {
	runner := &fakeRunner{runErr: errors.New("cannot exec")}
	d := &SX1302{ResetScript: writeScript(t), ResetPin: 23, Runner: runner}

	// Must not panic or abort; failures only matter downstream.
	d.Reset()

	if len(runner.runCalls) != 2 {
		t.Errorf("reset ran %d commands, want 2 despite failures", len(runner.runCalls))
	}
}

func TestLaunch_SX1301BuildsBusSuffixedPath(t *testing.T) {
	runner := &fakeRunner{}
	d := &SX1301{ForwarderDir: "/opt/pktfwd/sx1301", SPIBus: "spidev1.2", Runner: runner}

	if err := d.Launch(); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}

	want := "/opt/pktfwd/sx1301/lora_pkt_fwd_spidev1.2"
	if len(runner.runCalls) != 1 || runner.runCalls[0][0] != want {
		t.Errorf("Launch() ran %v, want [%s]", runner.runCalls, want)
	}
}

func TestLaunch_SX1302UsesFixedPath(t *testing.T) {
	runner := &fakeRunner{}
	d := &SX1302{ForwarderPath: "/opt/pktfwd/sx1302/packet_forwarder/lora_pkt_fwd", Runner: runner}

	if err := d.Launch(); err != nil {
		t.Fatalf("Launch() error = %v", err)
	}

	if len(runner.runCalls) != 1 || runner.runCalls[0][0] != d.ForwarderPath {
		t.Errorf("Launch() ran %v, want [%s]", runner.runCalls, d.ForwarderPath)
	}
}

func TestSelect_PicksDriverForChipFamily(t *testing.T) {
	cfg := &config.Config{SPIBus: "spidev0.0", ResetPin: 17}
	runner := &fakeRunner{}

	if _, ok := Select(true, cfg, runner).(*SX1302); !ok {
		t.Error("Select(true) did not return an SX1302 driver")
	}
	if _, ok := Select(false, cfg, runner).(*SX1301); !ok {
		t.Error("Select(false) did not return an SX1301 driver")
	}
}

// fakeDriver counts reset/launch cycles and fails launches until a given
// attempt.
type fakeDriver struct {
	resets       int
	launches     int
	succeedAfter int // launch succeeds once launches >= succeedAfter; 0 means never
}

func (d *fakeDriver) Name() string { return "fake" }

func (d *fakeDriver) MaterializeConfig(region string) error { return nil }

func (d *fakeDriver) Reset() { d.resets++ }

func (d *fakeDriver) Launch() error {
	d.launches++
	if d.succeedAfter > 0 && d.launches >= d.succeedAfter {
		return nil
	}
	return errors.New("cannot start forwarder")
}

func supervisePolicy(sleeps *[]time.Duration) retry.Policy {
	return retry.Policy{
		MaxAttempts: 5,
		Backoff:     2 * time.Second,
		Logf:        func(format string, args ...any) {},
		Sleep:       func(d time.Duration) { *sleeps = append(*sleeps, d) },
	}
}

func TestSupervise_ExhaustsAttempts(t *testing.T) {
	d := &fakeDriver{}
	var sleeps []time.Duration

	err := Supervise(d, supervisePolicy(&sleeps))
	if err == nil {
		t.Fatal("Supervise() expected error, got nil")
	}

	if d.resets != 5 {
		t.Errorf("reset invoked %d times, want 5", d.resets)
	}
	if d.launches != 5 {
		t.Errorf("launch invoked %d times, want 5", d.launches)
	}
	if len(sleeps) != 4 {
		t.Errorf("slept %d times, want 4", len(sleeps))
	}
	for i, s := range sleeps {
		if s != 2*time.Second {
			t.Errorf("sleep %d = %v, want 2s", i, s)
		}
	}
}

func TestSupervise_SucceedsOnThirdAttempt(t *testing.T) {
	d := &fakeDriver{succeedAfter: 3}
	var sleeps []time.Duration

	if err := Supervise(d, supervisePolicy(&sleeps)); err != nil {
		t.Fatalf("Supervise() error = %v", err)
	}

	if d.resets != 3 {
		t.Errorf("reset invoked %d times, want 3", d.resets)
	}
	if len(sleeps) != 2 {
		t.Errorf("slept %d times, want 2", len(sleeps))
	}
}

func TestSupervise_ResetsBeforeEveryLaunch(t *testing.T) {
	d := &fakeDriver{succeedAfter: 1}
	var sleeps []time.Duration

	if err := Supervise(d, supervisePolicy(&sleeps)); err != nil {
		t.Fatalf("Supervise() error = %v", err)
	}

	if d.resets != 1 || d.launches != 1 {
		t.Errorf("resets = %d, launches = %d, want 1 and 1", d.resets, d.launches)
	}
}
