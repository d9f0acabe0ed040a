package service

import "errors"

// ErrTitleRequired rejects create and update requests whose title is empty
// after trimming. No mutation happens when it is returned.
var ErrTitleRequired = errors.New("title is required")

// ErrNoteNotFound covers both a missing note and one owned by another user;
// the two cases are indistinguishable to the caller.
var ErrNoteNotFound = errors.New("note not found")
