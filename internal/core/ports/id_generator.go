package ports

// IDGenerator produces globally unique, opaque account identifiers.
type IDGenerator interface {
	Generate() string
}
