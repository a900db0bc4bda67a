package rl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strconv"

	"github.com/harmonlab/harmony-rl/util"
)

// DataSet is the result of compressing a run's traces.
type DataSet interface{}

// Analyzer consumes traces episode by episode and produces a DataSet.
type Analyzer interface {
	// Analyze is called once per episode with the run index, episode
	// number, experiment name and completed trace.
	Analyze(run int, episode int, name string, trace *Trace)
	DataSet() DataSet
	Reset()
}

// Comparator renders datasets of several experiments side by side.
// Arguments: run index, episode count, experiment names, datasets.
type Comparator func(int, int, []string, []DataSet)

func NoopComparator() Comparator {
	return func(int, int, []string, []DataSet) {}
}

// Experiment is one named learner/environment pairing.
type Experiment struct {
	Name        string
	learner     Learner
	environment Environment
}

func NewExperiment(name string, learner Learner, environment Environment) *Experiment {
	return &Experiment{
		Name:        name,
		learner:     learner,
		environment: environment,
	}
}

// RunConfig parameterizes one run of one experiment.
type RunConfig struct {
	CurrentRun   int
	Episodes     int
	Analyzers    []Analyzer
	RecordTraces bool
	RecordPath   string
	Context      context.Context
}

// Run executes the experiment for the configured number of episodes,
// feeding every completed trace to the analyzers.
func (e *Experiment) Run(rc *RunConfig) error {
	agent := NewAgent(&AgentConfig{
		Episodes:    rc.Episodes,
		Learner:     e.learner,
		Environment: e.environment,
	})

	for episode := 0; episode < rc.Episodes; episode++ {
		select {
		case <-rc.Context.Done():
			return ErrCancelled
		default:
		}

		trace, err := agent.RunEpisode(rc.Context, episode)
		if err != nil {
			return err
		}
		if (episode+1)%100 == 0 || episode+1 == rc.Episodes {
			fmt.Printf("\rExperiment: %s, Episode: %d/%d, Reward: %.3f", e.Name, episode+1, rc.Episodes, trace.TotalReward())
		}

		for _, a := range rc.Analyzers {
			a.Analyze(rc.CurrentRun, episode, e.Name, trace)
		}
		if rc.RecordTraces {
			e.recordTrace(rc, trace)
		}
	}
	fmt.Println("")
	return nil
}

func (e *Experiment) recordTrace(rc *RunConfig, trace *Trace) {
	tracesFile := path.Join(rc.RecordPath, "traces", e.Name+"_"+strconv.Itoa(rc.CurrentRun)+".jsonl")
	bs, err := json.Marshal(trace)
	if err != nil {
		return
	}
	util.AppendToFile(tracesFile, string(bs))
}

// Reset clears the learner so a fresh run starts from scratch.
func (e *Experiment) Reset() {
	e.learner.Reset()
}

// ComparisonConfig configures a multi run comparison of experiments.
type ComparisonConfig struct {
	Runs         int
	Episodes     int
	RecordPath   string
	RecordTraces bool
}

// Comparison runs several experiments under identical budgets and
// hands their datasets to the registered comparators.
type Comparison struct {
	Experiments []*Experiment
	analyzers   map[string]Analyzer
	comparators map[string]Comparator
	config      *ComparisonConfig
}

func NewComparison(config *ComparisonConfig) *Comparison {
	if config.RecordPath != "" {
		os.MkdirAll(config.RecordPath, 0755)
		if config.RecordTraces {
			os.MkdirAll(path.Join(config.RecordPath, "traces"), 0755)
		}
	}
	return &Comparison{
		Experiments: make([]*Experiment, 0),
		analyzers:   make(map[string]Analyzer),
		comparators: make(map[string]Comparator),
		config:      config,
	}
}

func (c *Comparison) AddAnalysis(name string, analyzer Analyzer, comparator Comparator) {
	c.analyzers[name] = analyzer
	c.comparators[name] = comparator
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}

// Run executes every experiment per run, then calls the comparators on
// the collected datasets.
func (c *Comparison) Run(ctx context.Context) error {
	for run := 0; run < c.config.Runs; run++ {
		fmt.Printf("Run %d\n", run+1)
		datasets := make(map[string][]DataSet)
		for name := range c.analyzers {
			datasets[name] = make([]DataSet, len(c.Experiments))
		}
		names := make([]string, len(c.Experiments))

		for i, e := range c.Experiments {
			select {
			case <-ctx.Done():
				return ErrCancelled
			default:
			}
			err := e.Run(&RunConfig{
				CurrentRun:   run,
				Episodes:     c.config.Episodes,
				Analyzers:    c.collectAnalyzers(),
				RecordTraces: c.config.RecordTraces,
				RecordPath:   c.config.RecordPath,
				Context:      ctx,
			})
			if err != nil {
				return err
			}
			for name, a := range c.analyzers {
				datasets[name][i] = a.DataSet()
				a.Reset()
			}
			names[i] = e.Name
			e.Reset()
		}
		for name, comp := range c.comparators {
			comp(run, c.config.Episodes, names, datasets[name])
		}
	}
	return nil
}

func (c *Comparison) collectAnalyzers() []Analyzer {
	out := make([]Analyzer, 0, len(c.analyzers))
	for _, a := range c.analyzers {
		out = append(out, a)
	}
	return out
}
