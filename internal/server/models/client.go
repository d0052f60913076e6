package models

// Client is a machine-client identity loaded from static configuration at
// startup. Immutable at runtime.
type Client struct {
	ID     string
	Secret string
}
