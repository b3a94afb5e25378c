package models

import "time"

type DeploymentState string

const (
	DeploymentStateInitializing DeploymentState = "INITIALIZING"
	DeploymentStateBuilding     DeploymentState = "BUILDING"
	DeploymentStateError        DeploymentState = "ERROR"
	DeploymentStateReady        DeploymentState = "READY"
	DeploymentStateQueued       DeploymentState = "QUEUED"
	DeploymentStateCanceled     DeploymentState = "CANCELED"
	DeploymentStateUnknown      DeploymentState = "UNKNOWN"
)

// NormalizeState maps any value the API returns onto a known state.
func NormalizeState(s DeploymentState) DeploymentState {
	switch s {
	case DeploymentStateInitializing, DeploymentStateBuilding,
		DeploymentStateError, DeploymentStateReady,
		DeploymentStateQueued, DeploymentStateCanceled:
		return s
	}
	return DeploymentStateUnknown
}

type Creator struct {
	Username string `json:"username"`
}

// Deployment is one build/release instance of a project as reported by the
// API. Timestamps are epoch milliseconds; BuildingAt and Ready are zero
// until the deployment reaches those phases.
type Deployment struct {
	URL        string            `json:"url"`
	Name       string            `json:"name"`
	State      DeploymentState   `json:"state"`
	CreatedAt  int64             `json:"createdAt"`
	BuildingAt int64             `json:"buildingAt"`
	Ready      int64             `json:"ready"`
	Creator    Creator           `json:"creator"`
	Meta       map[string]string `json:"meta,omitempty"`
}

func (d Deployment) Created() time.Time {
	return time.UnixMilli(d.CreatedAt)
}

// Pagination is the cursor block returned alongside a deployment page.
// Next is the createdAt of the oldest row, usable as the next 'until'.
type Pagination struct {
	Count int   `json:"count"`
	Next  int64 `json:"next"`
}

type DeploymentsResponse struct {
	Deployments []Deployment `json:"deployments"`
	Pagination  Pagination   `json:"pagination"`
}
