package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is the schema version that the application expects
const ExpectedEnvSchemaVersion = "1.0"

// RequiredEnvVars lists the environment variables every backend needs
var RequiredEnvVars = []string{
	EnvSchemaVersion,
	EnvAPIKey,
}

// BackendEnvVars lists the extra variables each storage backend needs
var BackendEnvVars = map[string][]string{
	BackendPostgres: {EnvDBUser, EnvDBPassword, EnvDBHost, EnvDBPort, EnvDBName},
	BackendSQLite:   {EnvSQLitePath},
	BackendMemory:   nil,
}

// ValidateEnv checks that all required environment variables are set
// and that the schema version matches expectations
func ValidateEnv() error {
	// Check schema version first
	schemaVersion := os.Getenv(EnvSchemaVersion)
	if schemaVersion == "" {
		return fmt.Errorf("ENV_SCHEMA_VERSION is not set - please update your .env file to include this field (expected: %s)", ExpectedEnvSchemaVersion)
	}

	if schemaVersion != ExpectedEnvSchemaVersion {
		return fmt.Errorf("ENV_SCHEMA_VERSION mismatch: expected %s, got %s - your .env file may be outdated", ExpectedEnvSchemaVersion, schemaVersion)
	}

	backend := strings.ToLower(os.Getenv(EnvStorageBackend))
	if backend == "" {
		backend = BackendPostgres
	}
	backendVars, ok := BackendEnvVars[backend]
	if !ok {
		return fmt.Errorf("unknown STORAGE_BACKEND %q", backend)
	}

	var missing []string
	for _, envVar := range append(append([]string{}, RequiredEnvVars...), backendVars...) {
		if os.Getenv(envVar) == "" {
			missing = append(missing, envVar)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateEnvWithWarnings checks environment variables and returns warnings
// for non-critical issues (like using default values)
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string

	if os.Getenv(EnvDBPassword) == "change_this_secure_password" {
		warnings = append(warnings, "DB_PASSWORD appears to be using the example value - please use a secure password")
	}

	if os.Getenv(EnvAPIKey) == "generate_with_openssl_rand_hex_32" {
		warnings = append(warnings, "API_KEY appears to be using the example value - generate a secure key with: openssl rand -hex 32")
	}

	if strings.EqualFold(os.Getenv(EnvStorageBackend), BackendMemory) {
		warnings = append(warnings, "STORAGE_BACKEND=memory keeps profiles in process memory only - saves are lost on restart")
	}

	return warnings, nil
}
