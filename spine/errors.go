package spine

import "fmt"

// NotFoundError reports a failed lookup of a named resource on a skeleton,
// such as an animation or a skin.
type NotFoundError struct {
	// What is the kind of resource, e.g. "animation".
	What string
	// Name is the name that was looked up.
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Name)
}
