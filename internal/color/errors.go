package color

import "errors"

// ErrUnknownCompositor is returned by CompositorByName for an unregistered name.
var ErrUnknownCompositor = errors.New("color: unknown compositor")
