package procs

import (
	"os"

	"github.com/mitchellh/go-ps"
)

// Lister returns the process table.
type Lister func() ([]ps.Process, error)

// Running returns the PIDs of processes whose executable name is processName,
// excluding the current process.
func Running(list Lister, processName string) ([]int, error) {
	if list == nil {
		list = ps.Processes
	}

	processList, err := list()
	if err != nil {
		return nil, err
	}

	thisProcessID := os.Getpid()

	var pids []int

	for _, process := range processList {
		if process.Pid() == thisProcessID {
			continue
		}

		if process.Executable() != processName {
			continue
		}

		pids = append(pids, process.Pid())
	}

	return pids, nil
}
