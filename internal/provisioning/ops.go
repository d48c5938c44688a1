package provisioning

// Operation names used in errors, events, and metrics.
const (
	OpListJobs             = "ListJobs"
	OpCreateJob            = "CreateJob"
	OpDeleteJob            = "DeleteJob"
	OpStartJob             = "StartJob"
	OpSetAffinity          = "SetAffinity"
	OpListNetworks         = "ListNetworks"
	OpCreateNetwork        = "CreateNetwork"
	OpDeleteNetwork        = "DeleteNetwork"
	OpJoinNetwork          = "JoinNetwork"
	OpListServices         = "ListServices"
	OpCreateService        = "CreateService"
	OpDeleteService        = "DeleteService"
	OpBindService          = "BindService"
	OpListStorageProviders = "ListStorageProviders"
)
