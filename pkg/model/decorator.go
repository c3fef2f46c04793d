package model

// Decorator adjusts the field schema after it has been derived, for example
// to apply presentation overrides.
type Decorator interface {
	Decorate(fields []Field) ([]Field, error)
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(fields []Field) ([]Field, error)

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(fields []Field) ([]Field, error) {
	return fn(fields)
}
