package models

type LinkStatus string

const (
	LinkStatusLinked    LinkStatus = "linked"
	LinkStatusNotLinked LinkStatus = "not_linked"
	LinkStatusError     LinkStatus = "error"
)

// Link associates a local directory with a remote org and project.
type Link struct {
	Status  LinkStatus `toml:"-"`
	Org     string     `toml:"org"`
	Project string     `toml:"project"`
}
