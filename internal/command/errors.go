package command

import "errors"

var ErrTitleRequired = errors.New("title is required")
