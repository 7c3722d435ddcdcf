package store

// Config tells the store where to keep its files.
type Config interface {
	BasePath() string
}

// Dir is a Config naming a directory directly.
type Dir string

// BasePath implements Config.
func (d Dir) BasePath() string {
	return string(d)
}
