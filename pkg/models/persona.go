package models

// FlowPersona is a discrete, rule-derived label summarizing a profile's
// dominant behavioral pattern. The set is closed; the classifier matches
// exhaustively and falls back to PersonaExplorer.
type FlowPersona string

const (
	PersonaNewcomer   FlowPersona = "newcomer" // cold start, too few interactions
	PersonaAudiophile FlowPersona = "audiophile"
	PersonaLivewire   FlowPersona = "livewire"
	PersonaNightOwl   FlowPersona = "night_owl"
	PersonaBinger     FlowPersona = "binger"
	PersonaScholar    FlowPersona = "scholar"
	PersonaDeepDiver  FlowPersona = "deep_diver"
	PersonaSkimmer    FlowPersona = "skimmer"
	PersonaSpecialist FlowPersona = "specialist"
	PersonaExplorer   FlowPersona = "explorer"
)

type PersonaResponse struct {
	Persona FlowPersona `json:"persona"`
}

type DiscoveryQueriesResponse struct {
	Queries []string `json:"queries"`
}
