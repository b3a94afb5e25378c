package constants

const (
	MaxNameLength = 64
	MinNameLength = 1

	// page size the deployments endpoint returns; when a full page comes
	// back there may be more to fetch
	DeploymentsPageSize = 20

	DeploymentDomainSuffix = ".strato.app"

	DefaultAPIURL = "https://api.strato.app"
)
