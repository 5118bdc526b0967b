package domain

import "time"

// AnalysisResult is the fully-normalized, display-ready outcome of one
// pipeline run. Every string field is guaranteed non-empty: absent backend
// data degrades to a placeholder, so renderers never see a hole.
type AnalysisResult struct {
	CaseID          string       `json:"caseId"`
	Timestamp       time.Time    `json:"timestamp"`
	QualityWarnings []string     `json:"qualityWarnings,omitempty"`
	AccidentCard    AccidentCard `json:"accidentCard"`
	Opinion         Opinion      `json:"opinion"`
}

// AccidentCard mirrors the sections of the statutory accident card.
type AccidentCard struct {
	InjuredPerson InjuredPerson `json:"injuredPerson"`
	Employer      Employer      `json:"employer"`
	Accident      Accident      `json:"accident"`
	Injury        Injury        `json:"injury"`
	Witnesses     []Witness     `json:"witnesses"`
	Qualification Qualification `json:"qualification"`
}

type InjuredPerson struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	PESEL     string `json:"pesel"`
	BirthDate string `json:"birthDate"`
	Address   string `json:"address"`
	Position  string `json:"position"`
}

type Employer struct {
	Name    string `json:"name"`
	NIP     string `json:"nip"`
	REGON   string `json:"regon"`
	Address string `json:"address"`
	PKD     string `json:"pkd"`
}

type Accident struct {
	Date                   string `json:"date"`
	Time                   string `json:"time"`
	Place                  string `json:"place"`
	PlaceType              string `json:"placeType"`
	ActivityDuringAccident string `json:"activityDuringAccident"`
	DirectEvent            string `json:"directEvent"`
	ExternalCause          string `json:"externalCause"`
}

type Injury struct {
	Type             string `json:"type"`
	BodyPart         string `json:"bodyPart"`
	Description      string `json:"description"`
	FirstAidProvided bool   `json:"firstAidProvided"`
}

type Witness struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

type Qualification struct {
	IsWorkAccident bool   `json:"isWorkAccident"`
	Justification  string `json:"justification"`
	LegalBasis     string `json:"legalBasis"`
}

// Opinion is the generated qualification opinion.
type Opinion struct {
	FactualState       string             `json:"factualState"`
	EvidenceMaterial   string             `json:"evidenceMaterial"`
	DefinitionAnalysis DefinitionAnalysis `json:"definitionAnalysis"`
	Conclusion         Conclusion         `json:"conclusion"`
}

// DefinitionAnalysis assesses the four statutory elements of a work
// accident: suddenness, external cause, injury and relation to work.
type DefinitionAnalysis struct {
	Suddenness    DefinitionElement `json:"suddenness"`
	ExternalCause DefinitionElement `json:"externalCause"`
	Injury        DefinitionElement `json:"injury"`
	WorkRelation  DefinitionElement `json:"workRelation"`
}

type DefinitionElement struct {
	Met           bool   `json:"met"`
	Justification string `json:"justification"`
}

type Conclusion struct {
	IsWorkAccident bool   `json:"isWorkAccident"`
	Summary        string `json:"summary"`
}
