package sources

// Source provides the set of logo files available locally.
type Source interface {
	Inventory() (Inventory, error)
}
