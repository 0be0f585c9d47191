package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for run-aborting conditions.
var (
	// ErrNoLigands is returned when the ligand input directory contains no
	// recognized ligand files.
	ErrNoLigands = errors.New("no ligand input files found")

	// ErrNoSuccessfulDockings is returned after a full run in which every
	// ligand failed some stage.
	ErrNoSuccessfulDockings = errors.New("no ligand docked successfully")
)

// InvalidReceptorError is returned when the (pdbID, aurora) pair selects
// neither supported receptor.
type InvalidReceptorError struct {
	PDBID  string
	Aurora string
}

func (e *InvalidReceptorError) Error() string {
	return fmt.Sprintf("unsupported receptor selector: pdbid=%q aurora=%q", e.PDBID, e.Aurora)
}

// ReceptorPrepError wraps a fatal failure of the one-time receptor
// preparation gate.
type ReceptorPrepError struct {
	Step string // "prepare" or "autogrid"
	Err  error
}

func (e *ReceptorPrepError) Error() string {
	return fmt.Sprintf("receptor preparation (%s): %v", e.Step, e.Err)
}

func (e *ReceptorPrepError) Unwrap() error {
	return e.Err
}
