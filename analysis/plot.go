package analysis

import (
	"fmt"
	"os"
	"path"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/harmonlab/harmony-rl/rl"
	"github.com/harmonlab/harmony-rl/util"
)

// RewardPlotter renders the per episode reward curves of all
// experiments into one chart per run.
func RewardPlotter(plotPath string) rl.Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, episodes int, names []string, datasets []rl.DataSet) {
		p := plot.New()
		p.Title.Text = "Episode reward"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Total reward"
		for i := 0; i < len(names); i++ {
			rewards := datasets[i].([]float64)
			points := make(plotter.XYs, len(rewards))
			for j, v := range rewards {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(rewards) > 0 {
				fmt.Printf("Final episode reward: %.3f for experiment: %s\n", rewards[len(rewards)-1], names[i])
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_reward.png"))
	}
}

// CoveragePlotter renders the cumulative unique observation counts of
// all experiments into one chart per run.
func CoveragePlotter(plotPath string) rl.Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, episodes int, names []string, datasets []rl.DataSet) {
		p := plot.New()
		p.Title.Text = "Observation coverage"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Observations covered"
		for i := 0; i < len(names); i++ {
			counts := datasets[i].([]int)
			points := make(plotter.XYs, len(counts))
			for j, v := range counts {
				points[j] = plotter.XY{
					X: float64(j),
					Y: float64(v),
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(counts) > 0 {
				fmt.Printf("Number of unique observations: %d for experiment: %s\n", counts[len(counts)-1], names[i])
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_coverage.png"))
	}
}

// MotionPlotter renders the contrary motion fraction of every
// experiment and writes the final profiles to a summary file.
func MotionPlotter(plotPath string) rl.Comparator {
	if _, err := os.Stat(plotPath); err != nil {
		os.MkdirAll(plotPath, os.ModePerm)
	}
	return func(run int, episodes int, names []string, datasets []rl.DataSet) {
		p := plot.New()
		p.Title.Text = "Contrary motion"
		p.X.Label.Text = "Episode"
		p.Y.Label.Text = "Fraction of steps"
		summary := make([]string, 0, len(names))
		for i := 0; i < len(names); i++ {
			profiles := datasets[i].([]MotionProfile)
			points := make(plotter.XYs, len(profiles))
			for j, v := range profiles {
				points[j] = plotter.XY{
					X: float64(j),
					Y: v.Contrary,
				}
			}
			line, err := plotter.NewLine(points)
			if err != nil {
				continue
			}
			line.Color = plotutil.Color(i)
			p.Add(line)
			p.Legend.Add(names[i], line)
			if len(profiles) > 0 {
				last := profiles[len(profiles)-1]
				summary = append(summary, fmt.Sprintf("%s: contrary=%.3f parallel=%.3f oblique=%.3f", names[i], last.Contrary, last.Parallel, last.Oblique))
			}
		}
		p.Save(8*vg.Inch, 8*vg.Inch, path.Join(plotPath, strconv.Itoa(run)+"_motion.png"))
		util.WriteToFile(path.Join(plotPath, strconv.Itoa(run)+"_motion.txt"), summary...)
	}
}
