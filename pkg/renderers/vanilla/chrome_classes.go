package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassPage       ChromeClass = "signup-page"
	ClassForm       ChromeClass = "signup-form"
	ClassRow        ChromeClass = "signup-row"
	ClassRowInvalid ChromeClass = "signup-row--invalid"
	ClassErrors     ChromeClass = "signup-errors"
	ClassSubmit     ChromeClass = "signup-submit"
	ClassLinks      ChromeClass = "signup-links"
)
