package logger

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pktfwd/pkg/globals"
)

const maxLogs = 500

type Entry struct {
	Time string `json:"time"`
	Msg  string `json:"msg"`
}

type writer struct {
	mu   sync.Mutex
	path string
	logs []Entry
}

var w *writer

// Init routes the standard logger to stdout plus a persisted ring of
// recent entries, kept so the last boot's output survives a crash loop.
func Init() {
	w = &writer{path: globals.LogsPath}
	w.logs = w.load()
	log.SetOutput(io.MultiWriter(os.Stdout, w))
}

func (wr *writer) Write(p []byte) (int, error) {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	wr.logs = append(wr.logs, Entry{
		Time: time.Now().Format(time.RFC3339),
		Msg:  string(p),
	})

	if len(wr.logs) > maxLogs {
		wr.logs = wr.logs[len(wr.logs)-maxLogs:]
	}

	wr.save()
	return len(p), nil
}

// GetLogs returns a copy of the retained log entries
func GetLogs() []Entry {
	if w == nil {
		return []Entry{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]Entry{}, w.logs...)
}

func (wr *writer) load() []Entry {
	data, err := os.ReadFile(wr.path)
	if err != nil {
		return []Entry{}
	}
	var logs []Entry
	json.Unmarshal(data, &logs)
	return logs
}

// Persistence is best effort; logging must never fail the supervisor.
func (wr *writer) save() {
	data, err := json.Marshal(wr.logs)
	if err != nil {
		return
	}
	os.MkdirAll(filepath.Dir(wr.path), 0755)
	os.WriteFile(wr.path, data, 0644)
}
