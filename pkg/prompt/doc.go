// Package prompt collects widget values interactively. The default driver is
// backed by survey; tests and embedders can supply their own PromptDriver.
package prompt
