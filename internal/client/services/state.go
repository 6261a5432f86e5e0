package services

import (
	"fmt"

	"github.com/dmitrijs2005/diamondstore/internal/client/models"
	"github.com/dmitrijs2005/diamondstore/internal/common"
)

type Status int

const (
	// StatusLoading means no load has finished yet.
	StatusLoading Status = iota
	StatusReady
	// StatusDegraded means the last load failed and the catalog shows
	// whatever the backup held.
	StatusDegraded
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusDegraded:
		return "degraded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// State is a copy of the catalog as seen by consumers. Modifying it does
// not affect the service.
type State struct {
	Categories []models.Category
	Products   []models.Product
	// Loading is true while at least one load is in flight.
	Loading bool
	// Err is set while Status is StatusDegraded.
	Err    error
	Status Status
}

// DegradedError is the load error shown to users. It matches
// common.ErrBackendUnavailable and also unwraps to the underlying cause.
type DegradedError struct {
	Cause error
}

func (e *DegradedError) Error() string {
	return common.ErrBackendUnavailable.Error()
}

func (e *DegradedError) Unwrap() []error {
	return []error{common.ErrBackendUnavailable, e.Cause}
}

type WriteMode string

const (
	// WriteStrict changes local state only after the backend confirms.
	WriteStrict WriteMode = "strict"
	// WriteOptimistic keeps a created record locally even when the
	// backend rejects it. Updates and deletes stay server-confirmed.
	WriteOptimistic WriteMode = "optimistic"
)

func ParseWriteMode(s string) (WriteMode, error) {
	switch WriteMode(s) {
	case WriteStrict, WriteOptimistic:
		return WriteMode(s), nil
	case "":
		return WriteStrict, nil
	default:
		return "", fmt.Errorf("unknown write mode %q (want %q or %q)", s, WriteStrict, WriteOptimistic)
	}
}
