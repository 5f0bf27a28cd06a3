package repositories

import "errors"

var errNoScope = errors.New("no database scope in context")
