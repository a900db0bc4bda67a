// Package explorer inspects saved policy checkpoints and recorded
// training traces, through an HTTP API or an interactive console.
package explorer

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/harmonlab/harmony-rl/policies"
	"github.com/harmonlab/harmony-rl/rl"
)

// checkpointFile is the common shape of learner snapshots. Value
// learners store their rows under "table", policy gradient learners
// under "prefs".
type checkpointFile struct {
	Kind    string                 `json:"kind"`
	Epsilon float64                `json:"epsilon"`
	Stats   policies.TrainingStats `json:"stats"`
	Table   *policies.Table        `json:"table"`
	Prefs   *policies.Table        `json:"prefs"`
}

func (c *checkpointFile) table() *policies.Table {
	if c.Table != nil {
		return c.Table
	}
	return c.Prefs
}

// Explorer holds one loaded checkpoint and the traces recorded
// alongside it.
type Explorer struct {
	PolicyFile string
	TracesFile string

	checkpoint *checkpointFile
	Traces     []*rl.Trace
}

// NewExplorer loads a checkpoint and a jsonl trace file.
func NewExplorer(policyFile string, tracesFile string) (*Explorer, error) {
	e := &Explorer{
		PolicyFile: policyFile,
		TracesFile: tracesFile,
		Traces:     make([]*rl.Trace, 0),
	}

	data, err := os.ReadFile(policyFile)
	if err != nil {
		return nil, fmt.Errorf("error reading checkpoint: %s", err)
	}
	cp := &checkpointFile{}
	if err := json.Unmarshal(data, cp); err != nil {
		return nil, fmt.Errorf("error parsing checkpoint: %s", err)
	}
	if cp.table() == nil {
		return nil, errors.New("checkpoint has no policy rows")
	}
	e.checkpoint = cp

	e.Traces, err = readTraces(tracesFile)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func readTraces(path string) ([]*rl.Trace, error) {
	traces := make([]*rl.Trace, 0)
	file, err := os.Open(path)
	if err != nil {
		return traces, fmt.Errorf("error reading file: %s", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	maxTraceSize := 5 * 1024 * 1024
	scanner.Buffer(make([]byte, maxTraceSize), maxTraceSize)
	for scanner.Scan() {
		t := rl.NewTrace()
		bs := scanner.Bytes()
		if len(bs) >= maxTraceSize {
			return traces, errors.New("error trace too big")
		}
		if err := json.Unmarshal(bs, t); err != nil {
			return traces, fmt.Errorf("error reading file contents: %s", err)
		}
		traces = append(traces, t)
	}
	if scanner.Err() != nil {
		return traces, fmt.Errorf("failed to read traces: %s", scanner.Err())
	}
	return traces, nil
}

// Kind reports the learner type the checkpoint was taken from.
func (e *Explorer) Kind() string {
	return e.checkpoint.Kind
}

// Stats returns the training metadata of the checkpoint.
func (e *Explorer) Stats() policies.TrainingStats {
	return e.checkpoint.Stats
}

// Keys lists every observation fingerprint with a learned row.
func (e *Explorer) Keys() []string {
	return e.checkpoint.table().Keys()
}

// Row returns the learned values for one observation fingerprint.
func (e *Explorer) Row(key string) ([]float64, bool) {
	return e.checkpoint.table().Peek(key)
}

// InitialObservations counts how often each fingerprint appeared as an
// episode's first observation.
func (e *Explorer) InitialObservations() map[string]int {
	initial := make(map[string]int)
	for _, t := range e.Traces {
		first, ok := t.Get(0)
		if !ok {
			continue
		}
		initial[policies.Fingerprint(first.Obs)]++
	}
	return initial
}
