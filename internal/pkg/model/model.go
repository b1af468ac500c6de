package model

import "fmt"

type PhaseId int

func (v PhaseId) String() string {
	return fmt.Sprintf("%d", int(v))
}

type ModuleId int

func (v ModuleId) String() string {
	return fmt.Sprintf("%d", int(v))
}

type ProjectId int

func (v ProjectId) String() string {
	return fmt.Sprintf("%d", int(v))
}

type ConfigurationId int

func (v ConfigurationId) String() string {
	return fmt.Sprintf("%d", int(v))
}

// Project - one project from "users/me/projects".
type Project struct {
	Id   ProjectId `json:"id"`
	Name string    `json:"name"`
}

// PhaseType - name of the workflow phase type, eg. "2D Web Collection".
type PhaseType struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

// Phase - one phase of a project workflow.
type Phase struct {
	Id   PhaseId   `json:"id"`
	Name string    `json:"name"`
	Type PhaseType `json:"type"`
}

// Workflow - project workflow with its phases.
type Workflow struct {
	Id     int      `json:"id"`
	Name   string   `json:"name"`
	Phases []*Phase `json:"phases"`
}

// CollectionConfiguration - short record from the "collection-configurations" index.
type CollectionConfiguration struct {
	Id ConfigurationId `json:"id"`
}

// PhaseWithConfiguration - phase merged with the ID of its collection
// configuration, nil if the phase has none yet.
type PhaseWithConfiguration struct {
	Id                        PhaseId          `json:"id"`
	Name                      string           `json:"name"`
	PhaseType                 string           `json:"phaseType"`
	CollectionConfigurationId *ConfigurationId `json:"collectionConfigurationId"`
}

func (p *PhaseWithConfiguration) HasConfiguration() bool {
	return p.CollectionConfigurationId != nil
}

// TokenResponse - body of a successful login call.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

// CollectionPhaseTypes - phase types that carry a collection configuration.
func CollectionPhaseTypes() map[string]bool {
	return map[string]bool{
		"2D iOS Collection": true,
		"QC Web Collection": true,
		"2D Web Collection": true,
		"2D iOS Field QC":   true,
	}
}
