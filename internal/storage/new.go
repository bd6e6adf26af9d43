package storage

// New creates a Store rooted at root. Call Init before use.
func New(root string) Store {
	return &implStore{root: root}
}
