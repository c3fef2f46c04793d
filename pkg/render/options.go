package render

// RenderOptions describe per-request data that renderers can use without
// mutating controller state.
type RenderOptions struct {
	// Action is the submit target. Defaults to DefaultAction.
	Action string
	// Method defaults to POST.
	Method string
	// Notice is a transient message shown above the form, for example the
	// acknowledgement after a successful submission.
	Notice string
	// Title and SubmitLabel replace the default page copy when set.
	Title       string
	SubmitLabel string
	// Links overrides the navigation links. Nil means model.Links().
	Links []LinkOption
}

// LinkOption rewrites the href of a named navigation link.
type LinkOption struct {
	Name string
	Href string
}
