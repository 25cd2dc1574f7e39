package imageio

import "errors"

var errUnsupportedFormat = errors.New("unrecognized image container extension")
