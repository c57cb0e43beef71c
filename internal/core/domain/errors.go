package domain

import "go.trai.ch/zerr"

var (
	// ErrIntegrityViolation is returned when a manifest fails the configured integrity policy.
	// It is fatal for the current load and is never retried.
	ErrIntegrityViolation = zerr.New("manifest integrity check failed")

	// ErrIntegrityMissing is returned when the policy has no integrity entry for a resource.
	ErrIntegrityMissing = zerr.New("no integrity entry for resource")

	// ErrIntegrityMismatch is returned when none of the resource's integrity entries match its content.
	ErrIntegrityMismatch = zerr.New("integrity mismatch")

	// ErrUnsupportedIntegrity is returned when a policy uses an unknown integrity algorithm.
	ErrUnsupportedIntegrity = zerr.New("unsupported integrity algorithm, expected sha256, sha384 or sha512")

	// ErrPolicyReadFailed is returned when the policy manifest cannot be read.
	ErrPolicyReadFailed = zerr.New("failed to read policy manifest")

	// ErrPolicyParseFailed is returned when the policy manifest cannot be parsed.
	ErrPolicyParseFailed = zerr.New("failed to parse policy manifest")

	// ErrInvalidLocation is returned when a location is neither a filesystem path nor a file URL.
	ErrInvalidLocation = zerr.New("invalid location")

	// ErrNoLocations is returned when a command is invoked without any location.
	ErrNoLocations = zerr.New("no locations specified")

	// ErrTargetParseFailed is returned when an exports or imports value is not valid JSON.
	ErrTargetParseFailed = zerr.New("failed to parse target value")

	// ErrUnknownOutputFormat is returned when an unsupported output format is requested.
	ErrUnknownOutputFormat = zerr.New("unknown output format, expected 'json' or 'yaml'")
)
