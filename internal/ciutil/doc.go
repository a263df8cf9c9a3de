// Package ciutil detects continuous-integration environments and resolves
// the environment variables the test harness depends on. Integration tests
// skip silently on developer machines when no database is reachable, but in
// CI a missing database is a pipeline misconfiguration and must fail loudly;
// this package tells the two apart.
package ciutil
