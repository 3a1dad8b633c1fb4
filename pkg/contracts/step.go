package contracts

import "time"

// Step is one phase of a build and holds the output generated in that phase
type Step struct {
	Name   string `json:"name"`
	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`
	Output string `json:"output"`
	Nsec   int64  `json:"nsec"`

	// Start is set when a step is first seen through a live output event; it only drives elapsed
	// time display and is never sent to the ci server
	Start *time.Time `json:"start,omitempty"`
}

// BuildResult is a build including its build script and step output
type BuildResult struct {
	Build       Build  `json:"build"`
	BuildScript string `json:"build_script"`
	Steps       []Step `json:"steps"`
}

// StepByName returns the index of the step with the given name, or -1
func (br *BuildResult) StepByName(name string) int {
	for i := range br.Steps {
		if br.Steps[i].Name == name {
			return i
		}
	}
	return -1
}
