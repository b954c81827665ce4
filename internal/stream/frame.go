package stream

import "github.com/simonhull/swfkit/internal/types"

// frame is one open Begin/End marker.
type frame struct {
	name  string
	start int64
	limit int64 // reader only
}

// popFrame removes the innermost frame, which must be named name.
func popFrame(frames *[]frame, name string) frame {
	n := len(*frames)
	if n == 0 {
		panic(&types.FramingError{Got: name})
	}
	top := (*frames)[n-1]
	if top.name != name {
		panic(&types.FramingError{Want: top.name, Got: name})
	}
	*frames = (*frames)[:n-1]
	return top
}
