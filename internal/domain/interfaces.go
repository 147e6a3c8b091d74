package domain

// ListItem is implemented by entities shown in TUI lists.
// It provides the common API for display and filtering.
type ListItem interface {
	// GetID returns the unique identifier for this item
	GetID() string

	// GetTitle returns the display title
	GetTitle() string
}
