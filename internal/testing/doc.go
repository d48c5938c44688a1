// Package testing provides test utilities, builders, and fixtures for unit and integration tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating test configurations
//   - PlatformFixture: In-memory platform namespaces for common scenarios
//   - MockPlatform: Shared testify mock of platform.Client
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithName("pong").
//	    WithInstances(2).
//	    Build()
//
//	fixture := testing.NewPlatformFixture(cfg)
//	ctx := fixture.Context(t)
package testing
