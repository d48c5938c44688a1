// Package config defines the deployment configuration model.
//
// A [Config] describes one training cluster: how many gym/worker instances
// to run, the environment id handed to the agents, ports, images, the shared
// storage requirement and which platform driver to use. It is loaded from a
// YAML file ([Load]), defaulted ([Config.ApplyDefaults]), overlaid with CLI
// flags and secrets from the environment ([Config.ApplyEnv]) and finally
// checked with [Config.Validate].
//
// Driver timeouts are loaded separately from environment variables by
// [LoadTimeouts].
package config
