package orchestration_test

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/imamik/rlcluster/internal/config"
	"github.com/imamik/rlcluster/internal/orchestration"
	"github.com/imamik/rlcluster/internal/platform"
	"github.com/imamik/rlcluster/internal/platform/memory"
	"github.com/imamik/rlcluster/internal/provisioning"
	rltesting "github.com/imamik/rlcluster/internal/testing"
	"github.com/imamik/rlcluster/internal/util/naming"
)

// TestDeployProtocol is the entry point for the Ginkgo deploy protocol specs.
func TestDeployProtocol(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Deploy Protocol Suite")
}

func ops(calls []memory.Call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Op
	}
	return out
}

var _ = Describe("Deploy", func() {
	var (
		ctx    context.Context
		cfg    *config.Config
		client *memory.Client
		o      *orchestration.Orchestrator
	)

	deploy := func() error {
		o = orchestration.New(cfg, client,
			orchestration.WithObserver(provisioning.NewLogObserver(logr.Discard())))
		return o.Deploy(ctx)
	}

	BeforeEach(func() {
		ctx = context.Background()
		cfg = rltesting.NewConfigBuilder().WithName("universe").WithInstances(3).WithTags("gpu").Build()
		client = rltesting.NewPlatformFixture(cfg).Client
	})

	Context("into an empty namespace", func() {
		BeforeEach(func() {
			Expect(deploy()).To(Succeed())
		})

		It("creates one parameter server and a gym/worker pair per instance", func() {
			jobs, err := client.ListJobs(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(jobs).To(ConsistOf(
				"ps0",
				"vehicle0", "vehicle0worker",
				"vehicle1", "vehicle1worker",
				"vehicle2", "vehicle2worker",
			))
		})

		It("starts every job", func() {
			for _, name := range []string{"ps0", "vehicle0", "vehicle2worker"} {
				job, ok := client.Job(name)
				Expect(ok).To(BeTrue())
				Expect(job.Started).To(BeTrue(), name)
			}
		})

		It("joins every job to the deployment network under its own name", func() {
			job, _ := client.Job("vehicle1worker")
			Expect(job.Networks).To(HaveKeyWithValue(naming.Network("universe"), "vehicle1worker"))
		})

		It("binds the log service at the mount path", func() {
			job, _ := client.Job("ps0")
			Expect(job.Bindings).To(HaveKeyWithValue(naming.Service("universe"), cfg.Storage.MountPath))
		})

		It("ties each worker to its gym", func() {
			job, _ := client.Job("vehicle0worker")
			Expect(job.AffinityTo).To(Equal("vehicle0"))
			Expect(job.AffinityPolicy).To(Equal(platform.AffinityHard))
		})

		It("places only tagged instances", func() {
			gym, _ := client.Job("vehicle0")
			untagged, _ := client.Job("vehicle1")
			Expect(gym.Spec.PlacementTag).To(Equal("gpu"))
			Expect(untagged.Spec.PlacementTag).To(BeEmpty())
		})

		It("starts workers only after every other job", func() {
			starts := client.CallsTo(memory.OpStartJob)
			Expect(starts).To(HaveLen(7))
			for i, call := range starts {
				Expect(naming.IsWorker(call.Args[0])).To(Equal(i >= 4), call.Args[0])
			}
		})
	})

	Context("when no storage provider matches", func() {
		BeforeEach(func() {
			cfg.Storage.ProviderType = "ceph"
		})

		It("aborts before creating any job", func() {
			err := deploy()
			Expect(err).To(MatchError(platform.ErrNoStorageProvider))
			Expect(ops(client.Calls())).NotTo(ContainElement(memory.OpCreateJob))
		})
	})

	Context("when a job cannot be created", func() {
		BeforeEach(func() {
			client.Fail(memory.OpCreateJob, "vehicle1", errors.New("quota exceeded"))
		})

		It("finishes every phase and reports the failure", func() {
			err := deploy()

			var failures *provisioning.OperationErrors
			Expect(errors.As(err, &failures)).To(BeTrue())
			Expect(failures.Of(memory.OpCreateJob)).To(HaveLen(1))
			Expect(client.CallsTo(memory.OpBindService)).To(HaveLen(6))

			worker, _ := client.Job("vehicle2worker")
			Expect(worker.Started).To(BeTrue())
		})
	})

	Context("when redeployed", func() {
		It("replaces every resource", func() {
			Expect(deploy()).To(Succeed())
			client.ResetCalls()
			Expect(deploy()).To(Succeed())

			Expect(client.CallsTo(memory.OpDeleteJob)).To(HaveLen(7))
			Expect(client.CallsTo(memory.OpDeleteNetwork)).To(HaveLen(1))
			Expect(client.CallsTo(memory.OpDeleteService)).To(HaveLen(1))
			Expect(client.CallsTo(memory.OpCreateJob)).To(HaveLen(7))
		})
	})
})
