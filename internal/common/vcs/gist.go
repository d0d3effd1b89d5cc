package vcs

// Gist is a gist owned by an account
type Gist struct {
	ID          string
	Description string
	// FirstFile is the lexically first file name, used when Description is empty
	FirstFile string
	URL       string
	Public    bool
}

// DisplayTitle returns the description, falling back to the first file name
func (g Gist) DisplayTitle() string {
	if g.Description != "" {
		return g.Description
	}
	if g.FirstFile != "" {
		return g.FirstFile
	}
	return g.ID
}

// Project is a project board owned by an organization
type Project struct {
	Number int
	Name   string
	Body   string
	State  string
	URL    string
}
