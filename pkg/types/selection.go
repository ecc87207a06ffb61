package types

// SelectionItem is a single file or directory chosen for packaging.
type SelectionItem struct {
	// Name is the item's name relative to the project root
	Name string

	// Path is the absolute path to the item
	Path string

	// IsDir reports whether the item is a directory
	IsDir bool
}

// Selection is the outcome of matching the distribution list against a
// mod project directory. Items holds what was found; Missing holds the
// list entries that were absent and will only be warned about.
type Selection struct {
	// Root is the project directory the selection was made from
	Root string

	// Items are the files and directories that exist and will be packaged
	Items []SelectionItem

	// Missing are distribution list entries not present in the project
	Missing []string
}

// Names returns the names of all selected items, in selection order.
func (s Selection) Names() []string {
	names := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		names = append(names, item.Name)
	}
	return names
}
