package mediaurl

import "errors"

var ErrNotFound = errors.New("media url not found")
