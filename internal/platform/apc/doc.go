// Package apc implements platform.Client on top of the apc command-line tool.
//
// Every operation is one apc invocation built as a structured argument
// vector and run without a shell:
//
//	Target                namespace --batch
//	ListJobs              app list --batch
//	CreateJob             docker run <job> --image <image> --no-start ... --batch
//	DeleteJob             app delete <job> --batch
//	StartJob              app start <job> --batch
//	SetAffinity           app update <job> --affinity <to> --affinity-type <policy> --batch
//	ListNetworks          network list --batch
//	CreateNetwork         network create <network> --batch
//	DeleteNetwork         network delete <network> --batch
//	JoinNetwork           network join <network> --job <job> --discovery-address <name> --batch
//	ListServices          service list --batch
//	CreateService         service create <service> --provider <provider> --batch
//	DeleteService         service delete <service> --batch
//	BindService           service bind <service> --job <job> --batch -- --mountpath <path>
//	ListStorageProviders  provider list --batch
//
// List commands print bordered tables, which [ParseTable] reads. Failures
// whose output says the resource does not exist are reported as
// platform.ErrNotFound.
package apc
