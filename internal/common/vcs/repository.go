package vcs

// Repository represents a repository as returned by the remote source
type Repository interface {
	GetOwner() string
	GetName() string
	GetNameWithOwner() string
	GetURL() string
	GetDescription() string
	GetIsPrivate() bool
	GetIsFork() bool
	GetStargazersCount() int
}

// BaseRepository provides a common implementation of Repository
type BaseRepository struct {
	Owner           string
	Name            string
	URL             string
	Description     string
	IsPrivate       bool
	IsFork          bool
	StargazersCount int
}

// GetOwner returns the repository owner
func (r *BaseRepository) GetOwner() string { return r.Owner }

// GetName returns the repository name
func (r *BaseRepository) GetName() string { return r.Name }

// GetNameWithOwner returns owner/name
func (r *BaseRepository) GetNameWithOwner() string { return r.Owner + "/" + r.Name }

// GetURL returns the repository URL
func (r *BaseRepository) GetURL() string { return r.URL }

// GetDescription returns the repository description
func (r *BaseRepository) GetDescription() string { return r.Description }

// GetIsPrivate reports whether the repository is private
func (r *BaseRepository) GetIsPrivate() bool { return r.IsPrivate }

// GetIsFork reports whether the repository is a fork
func (r *BaseRepository) GetIsFork() bool { return r.IsFork }

// GetStargazersCount returns the number of stars
func (r *BaseRepository) GetStargazersCount() int { return r.StargazersCount }
