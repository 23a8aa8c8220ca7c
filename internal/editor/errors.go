package editor

import "errors"

var (
	ErrInvalidContainer  = errors.New("container has no area")
	ErrNoAsset           = errors.New("no asset selected")
	ErrNoChanges         = errors.New("no changes to apply")
	ErrOverlayNotFound   = errors.New("overlay not found")
	ErrEmptyText         = errors.New("text must not be empty")
	ErrUnknownTextStyle  = errors.New("unknown text style")
	ErrUnknownAdjustment = errors.New("unknown adjustment")
	ErrValueOutOfRange   = errors.New("value out of range")
	ErrSubmitInFlight    = errors.New("an edit submission is already in progress")
	ErrUnresolvedLogo    = errors.New("logo overlay references a local blob")
	ErrInvalidPayload    = errors.New("invalid edit payload")
)
