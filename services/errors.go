package services

import "errors"

var (
	ErrGroupNotFound       = errors.New("group not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrGameNotFound        = errors.New("game not found")

	ErrValidationFailed   = errors.New("validation failed")
	ErrInvalidResult      = errors.New("invalid game result")
	ErrInvalidDate        = errors.New("invalid game date")
	ErrRosterInvalid      = errors.New("group roster cannot be scheduled")
	ErrUnsupportedFormat  = errors.New("unsupported export format")
	ErrIncompleteMetadata = errors.New("group metadata is incomplete for export")
	ErrUnencodableReport  = errors.New("report contains characters the export encoding cannot represent")

	ErrSeedConflict     = errors.New("seed position already taken in this group")
	ErrScheduleLocked   = errors.New("group already has recorded results")
	ErrScheduleConflict = errors.New("group schedule conflict")
	ErrRosterLocked     = errors.New("group roster is fixed once fixtures exist")
)
