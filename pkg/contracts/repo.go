package contracts

// Repo represents a repository as configured on the ci server
type Repo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	VCS          string `json:"vcs"`
	Origin       string `json:"origin"`
	CheckoutPath string `json:"checkout_path"`
	BuildScript  string `json:"build_script"`
}

// RepoBuilds represents a repository and its most recent build per branch
type RepoBuilds struct {
	Repo   Repo    `json:"repo"`
	Builds []Build `json:"builds"`
}

// BuildByID returns the index of the build with the given id, or -1
func (rb *RepoBuilds) BuildByID(id int) int {
	for i := range rb.Builds {
		if rb.Builds[i].ID == id {
			return i
		}
	}
	return -1
}

// BuildByBranch returns the index of the first build for the given branch, or -1
func (rb *RepoBuilds) BuildByBranch(branch string) int {
	for i := range rb.Builds {
		if rb.Builds[i].Branch == branch {
			return i
		}
	}
	return -1
}
