package tui

type state int

const (
	countriesState state = iota
	servicesState
	resultsState
	providersState
	errorState
)
