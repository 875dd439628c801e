package sdkmock

import (
	"log/slog"

	"github.com/getmockd/sdkmock/pkg/sdk"
)

// std is the package-level Mocker most test suites use directly.
var std = New()

// Default returns the package-level Mocker.
func Default() *Mocker {
	return std
}

// Mock registers a replacement on the package-level Mocker.
func Mock(service, method string, repl any) (*Stub, error) {
	return std.Mock(service, method, repl)
}

// Remock replaces a registration on the package-level Mocker.
func Remock(service, method string, repl any) (*Stub, error) {
	return std.Remock(service, method, repl)
}

// Restore tears down interception on the package-level Mocker.
func Restore(target ...string) {
	std.Restore(target...)
}

// SetSDK selects a registered SDK root for the package-level Mocker.
func SetSDK(name string) error {
	return std.SetSDK(name)
}

// SetSDKInstance selects the SDK root for the package-level Mocker.
func SetSDKInstance(root *sdk.Root) error {
	return std.SetSDKInstance(root)
}

// SetLogger replaces the package-level Mocker's logger.
func SetLogger(log *slog.Logger) {
	std.SetLogger(log)
}
