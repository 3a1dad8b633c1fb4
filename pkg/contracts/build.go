package contracts

import "time"

// BuildStatus is the status of a build as reported by the ci server
type BuildStatus string

const (
	BuildStatusNew      BuildStatus = "new"
	BuildStatusClone    BuildStatus = "clone"
	BuildStatusCheckout BuildStatus = "checkout"
	BuildStatusBuild    BuildStatus = "build"
	BuildStatusSuccess  BuildStatus = "success"
)

// Build represents an attempt at building a repository
type Build struct {
	ID              int         `json:"id"`
	RepoID          int         `json:"repo_id"`
	Branch          string      `json:"branch"`
	CommitHash      string      `json:"commit_hash"`
	Status          BuildStatus `json:"status"`
	Start           time.Time   `json:"start"`
	Finish          *time.Time  `json:"finish"`
	ErrorMessage    string      `json:"error_message"`
	Results         []Result    `json:"results"`
	Released        *time.Time  `json:"released"`
	BuilddirRemoved bool        `json:"builddir_removed"`
	LastLine        string      `json:"last_line"`
	DiskUsage       int64       `json:"disk_usage"`
}

// Result is a file created by a build that can be released
type Result struct {
	Command   string `json:"command"`
	Version   string `json:"version"`
	Os        string `json:"os"`
	Arch      string `json:"arch"`
	Toolchain string `json:"toolchain"`
	Filename  string `json:"filename"`
	Filesize  int64  `json:"filesize"`
}

// IsReleased returns true if the build has been promoted to a release
func (b Build) IsReleased() bool {
	return b.Released != nil
}
