package ciutil

import "os"

// Environment variable names used across the codebase. Centralized here so
// the server, the test harness, and CI configuration agree on spelling.
const (
	// CI environment detection variables
	EnvCI            = "CI"
	EnvGitHubActions = "GITHUB_ACTIONS"
	EnvGitLabCI      = "GITLAB_CI"
	EnvJenkinsURL    = "JENKINS_URL"
	EnvCircleCI      = "CIRCLECI"

	// Database connection variables for integration tests
	EnvMongoURI    = "MONGODB_URI"
	EnvMongoTestDB = "MONGODB_TEST_DB"

	// DefaultTestDB is the database integration tests use when
	// MONGODB_TEST_DB is not set.
	DefaultTestDB = "listkeep_test"
)

// IsCI returns true if the current environment is a CI environment.
// It checks for common CI environment variables across different providers.
func IsCI() bool {
	return os.Getenv(EnvCI) != "" ||
		os.Getenv(EnvGitHubActions) != "" ||
		os.Getenv(EnvGitLabCI) != "" ||
		os.Getenv(EnvJenkinsURL) != "" ||
		os.Getenv(EnvCircleCI) != ""
}

// TestMongoURI returns the MongoDB connection string for integration tests,
// or an empty string when none is configured.
func TestMongoURI() string {
	return os.Getenv(EnvMongoURI)
}

// TestMongoDB returns the database name for integration tests.
func TestMongoDB() string {
	if name := os.Getenv(EnvMongoTestDB); name != "" {
		return name
	}
	return DefaultTestDB
}
