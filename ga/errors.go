package ga

import "errors"

var (
	// ErrInvalidArgument is returned for empty chromosomes, populations or
	// generation limits.
	ErrInvalidArgument = errors.New("ga: invalid argument")
	// ErrOutOfMemory is returned when a chromosome or population would exceed
	// the allowed storage.
	ErrOutOfMemory = errors.New("ga: out of memory")
	// ErrReleased is returned when a population is released twice.
	ErrReleased = errors.New("ga: population already released")
	// ErrBorrowed is returned when a population is released while a mating
	// pool still refers to its chromosomes.
	ErrBorrowed = errors.New("ga: population is borrowed by a mating pool")
	// ErrNotInitialized is returned by Step before Init.
	ErrNotInitialized = errors.New("ga: engine not initialized")
	// ErrInitialized is returned by a second Init.
	ErrInitialized = errors.New("ga: engine already initialized")
	// ErrTerminal is returned by Step once the engine has terminated.
	ErrTerminal = errors.New("ga: engine terminated")
)
