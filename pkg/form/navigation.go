package form

import (
	"context"
	"fmt"

	"github.com/goliatone/go-signup/pkg/model"
)

// Navigator hands control to another screen.
type Navigator interface {
	Navigate(ctx context.Context, link model.Link) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, link model.Link) error

// Navigate calls fn.
func (fn NavigatorFunc) Navigate(ctx context.Context, link model.Link) error {
	return fn(ctx, link)
}

// Triggers binds every signup link to a no-argument callback keyed by link
// name.
func Triggers(ctx context.Context, nav Navigator) map[string]func() error {
	triggers := make(map[string]func() error, len(model.Links()))
	for _, link := range model.Links() {
		link := link
		triggers[link.Name] = func() error {
			if nav == nil {
				return fmt.Errorf("form: no navigator for %q", link.Name)
			}
			return nav.Navigate(ctx, link)
		}
	}
	return triggers
}
