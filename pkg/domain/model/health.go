package model

// HealthStatus represents the health check status
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// ServiceInfo is the root endpoint payload describing the service
type ServiceInfo struct {
	Message   string            `json:"message"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}
