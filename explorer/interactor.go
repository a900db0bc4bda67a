package explorer

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/harmonlab/harmony-rl/policies"
)

// Interact runs the interactive console loop.
func (e *Explorer) Interact() {
	fmt.Printf("%s", e.header())
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s", e.prompt())

		optionS, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		option, err := strconv.Atoi(strings.Replace(optionS, "\n", "", -1))
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		fmt.Println("------------------------------------")
		switch option {
		case 1:
			fmt.Printf("%s", e.getInitialObservations())
		case 2:
			fmt.Printf("Enter the observation key: ")
			key, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println("Invalid input! Try again")
				continue
			}
			fmt.Printf("%s", e.getRow(strings.Replace(key, "\n", "", -1)))
		case 3:
			fmt.Printf("%s", e.getStats())
		case 4:
			fmt.Printf("Enter trace number (1-%d): ", len(e.Traces))
			traceNoS, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println("Invalid input! Try again")
				continue
			}
			traceNo, err := strconv.Atoi(strings.Replace(traceNoS, "\n", "", -1))
			if err != nil {
				fmt.Println("Invalid input! Not a number. Try again")
				continue
			}
			if traceNo < 1 || traceNo > len(e.Traces) {
				fmt.Printf("Invalid input! Should be between (1-%d). Try again\n", len(e.Traces))
				continue
			}
			e.interactTrace(traceNo-1, reader)
		case 5:
			fmt.Println("Quitting! Thank you")
			return
		default:
			fmt.Println("Wrong choice! Try again!")
		}
	}
}

func (e *Explorer) getStats() string {
	stats := e.Stats()
	return fmt.Sprintf("Learner: %s\nEpisodes: %d\nAverage reward: %.3f\nBest reward: %.3f\nStates: %d\n",
		e.Kind(), stats.Episodes, stats.Average(), stats.Best, len(e.Keys()))
}

func (e *Explorer) getRow(key string) string {
	row, ok := e.Row(key)
	if !ok {
		return "No such observation in the policy\n"
	}
	out := "Learned values are:\n"
	for slot, v := range row {
		out += fmt.Sprintf("slot %d: %f\n", slot, v)
	}
	return out
}

func (e *Explorer) getInitialObservations() string {
	out := "Initial observations are:\n"
	for k, count := range e.InitialObservations() {
		out += fmt.Sprintf("%s: %d\n", k, count)
	}
	return out
}

func (e *Explorer) header() string {
	return `
Welcome to the policy explorer!
	`
}

func (e *Explorer) prompt() string {
	return `
------------------------------------
Select one of the following options:
1. Show initial observations
2. Show learned values
3. Show training stats
4. Explore a trace
5. Quit
Enter your choice: `
}

func (e *Explorer) tracePrompt() string {
	return `
---------------------------------------------
Step(s) Values(d) Prev(p) Last(l) Quit(q): `
}

func (e *Explorer) interactTrace(traceNo int, reader *bufio.Reader) {
	stepCount := 0
	trace := e.Traces[traceNo]
	if trace.Len() == 0 {
		fmt.Println("Empty trace!")
		return
	}
	fmt.Println("---------------------------------------------")
	for {
		t, _ := trace.Get(stepCount)
		fmt.Printf("For step %d\nMelody: %d\nWritten: %v\nAction: %s\nReward: %.3f\n",
			stepCount+1, t.Info.MelodyPitch, t.Info.WrittenPitches, t.Action, t.Reward)
		fmt.Printf("%s", e.tracePrompt())
		optionS, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println("Invalid input! Try again")
			continue
		}
		fmt.Println("---------------------------------------------")
		option := strings.Replace(optionS, "\n", "", -1)
		switch option {
		case "s":
			if stepCount == trace.Len()-1 {
				fmt.Println("No more steps!")
				continue
			}
			stepCount += 1
		case "d":
			fmt.Printf("%s", e.getRow(policies.Fingerprint(t.Obs)))
		case "p":
			if stepCount == 0 {
				fmt.Printf("No more steps!")
				continue
			}
			stepCount -= 1
		case "l":
			stepCount = trace.Len() - 1
		case "q":
			return
		default:
			fmt.Println("Invalid option! Try again.")
		}
	}
}
