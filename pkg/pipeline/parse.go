package pipeline

import (
	"github.com/laserfinity/laserfinity/pkg/baseplate"
	"github.com/laserfinity/laserfinity/pkg/errors"
	"github.com/laserfinity/laserfinity/pkg/units"
)

// ParseDrawer converts the width and height strings into a validated drawer.
// A side that parses to zero counts as not given.
func ParseDrawer(width, height string) (baseplate.Drawer, error) {
	w, err := parseSide("drawer width", width)
	if err != nil {
		return baseplate.Drawer{}, err
	}
	h, err := parseSide("drawer height", height)
	if err != nil {
		return baseplate.Drawer{}, err
	}
	switch {
	case w == 0:
		return baseplate.Drawer{}, errors.NewMissingArgument(MissingDimensionsMessage, "drawer_width")
	case h == 0:
		return baseplate.Drawer{}, errors.NewMissingArgument(MissingDimensionsMessage, "drawer_height")
	}

	d := baseplate.Drawer{Width: w, Height: h}
	if err := d.Validate(); err != nil {
		return baseplate.Drawer{}, err
	}
	return d, nil
}

// parseSide keeps the ParseError reachable through the chain while putting
// its detail in the user-facing message.
func parseSide(name, text string) (float64, error) {
	v, err := units.ParseInches(text)
	if err == nil {
		return v, nil
	}
	var pe *errors.ParseError
	if errors.As(err, &pe) {
		return 0, errors.Wrap(errors.ErrCodeInvalidDimension, err, "%s: %s", name, pe.Error())
	}
	return 0, errors.Wrap(errors.ErrCodeInvalidDimension, err, "%s", name)
}
